package lang

var mediaAliases = map[string][]string{
	"en": {"File", "Image", "Media"},
	"ar": {"ملف", "صورة", "وسائط"},
	"cs": {"Soubor", "Obrázek", "Média"},
	"de": {"Datei", "Bild", "Medium"},
	"es": {"Archivo", "Imagen", "Medio"},
	"fa": {"پرونده", "تصویر", "رسانه"},
	"fr": {"Fichier", "Image", "Média"},
	"he": {"קובץ", "תמונה", "מדיה"},
	"it": {"File", "Immagine"},
	"ja": {"ファイル", "画像", "メディア"},
	"ko": {"파일", "그림", "미디어"},
	"nl": {"Bestand", "Afbeelding", "Media"},
	"pl": {"Plik", "Grafika", "Media"},
	"pt": {"Ficheiro", "Arquivo", "Imagem", "Multimédia"},
	"ru": {"Файл", "Изображение", "Медиа"},
	"sv": {"Fil", "Bild", "Media"},
	"tr": {"Dosya", "Resim", "Ortam"},
	"uk": {"Файл", "Зображення", "Медіа"},
	"vi": {"Tập tin", "Hình", "Phương tiện"},
	"zh": {"文件", "档案", "檔案", "图像", "圖像", "媒体", "媒體"},
}

var categoryAliases = map[string][]string{
	"en": {"Category"},
	"ar": {"تصنيف"},
	"cs": {"Kategorie"},
	"de": {"Kategorie"},
	"es": {"Categoría"},
	"fa": {"رده"},
	"fr": {"Catégorie"},
	"he": {"קטגוריה"},
	"it": {"Categoria"},
	"ja": {"カテゴリ"},
	"ko": {"분류"},
	"nl": {"Categorie"},
	"pl": {"Kategoria"},
	"pt": {"Categoria"},
	"ru": {"Категория"},
	"sv": {"Kategori"},
	"tr": {"Kategori"},
	"uk": {"Категорія"},
	"vi": {"Thể loại"},
	"zh": {"分类", "分類"},
}

// Languages whose text is counted by character.
var characterLanguages = map[string]struct{}{
	"bo":           {},
	"dz":           {},
	"gan":          {},
	"ja":           {},
	"km":           {},
	"lo":           {},
	"lzh":          {},
	"my":           {},
	"th":           {},
	"wuu":          {},
	"yue":          {},
	"zh":           {},
	"zh-classical": {},
	"zh-yue":       {},
}

// MediaExtensions are the file extensions recognized when looking for
// bare file names inside templates and galleries.
var MediaExtensions = []string{
	"djvu", "flac", "gif", "jpeg", "jpg", "mid", "mp3", "oga", "ogg", "ogv",
	"pdf", "png", "stl", "svg", "tif", "tiff", "wav", "webm", "webp",
}
