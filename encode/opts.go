package encode

import "github.com/signadot/wikidiff/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// EncodeSummary restricts output to the counts.
func EncodeSummary(v bool) EncodeOption {
	return func(es *EncState) { es.summary = v }
}

// EncodeName labels the document, as batch output does.
func EncodeName(name string) EncodeOption {
	return func(es *EncState) { es.name = name }
}
