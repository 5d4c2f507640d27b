package policy

import "sort"

// Category is a coarse classification of file extensions used for
// enable/disable toggles.
type Category int

const (
	// CategoryText covers text and every extension not listed below. It is
	// always enabled.
	CategoryText Category = iota
	CategoryImage
	CategoryManagedBinary
	CategoryGenericBinary
)

// String returns the category's display name.
func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryManagedBinary:
		return "managed binary"
	case CategoryGenericBinary:
		return "generic binary"
	default:
		return "text"
	}
}

// IsBinary reports whether files of this category never have their content
// surfaced.
func (c Category) IsBinary() bool {
	return c != CategoryText
}

// categories maps a lowercase ".ext" to its category. Extensions not present
// are CategoryText.
var categories = map[string]Category{
	".png":  CategoryImage,
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".gif":  CategoryImage,
	".bmp":  CategoryImage,
	".webp": CategoryImage,
	".ico":  CategoryImage,
	".tif":  CategoryImage,
	".tiff": CategoryImage,
	".svg":  CategoryImage,
	".heic": CategoryImage,
	".avif": CategoryImage,

	".dll":   CategoryManagedBinary,
	".jar":   CategoryManagedBinary,
	".class": CategoryManagedBinary,
	".war":   CategoryManagedBinary,
	".ear":   CategoryManagedBinary,
	".pyc":   CategoryManagedBinary,
	".pyo":   CategoryManagedBinary,
	".wasm":  CategoryManagedBinary,
	".apk":   CategoryManagedBinary,
	".nupkg": CategoryManagedBinary,
	".beam":  CategoryManagedBinary,

	".exe":    CategoryGenericBinary,
	".bin":    CategoryGenericBinary,
	".so":     CategoryGenericBinary,
	".dylib":  CategoryGenericBinary,
	".o":      CategoryGenericBinary,
	".a":      CategoryGenericBinary,
	".lib":    CategoryGenericBinary,
	".obj":    CategoryGenericBinary,
	".zip":    CategoryGenericBinary,
	".tar":    CategoryGenericBinary,
	".gz":     CategoryGenericBinary,
	".tgz":    CategoryGenericBinary,
	".bz2":    CategoryGenericBinary,
	".xz":     CategoryGenericBinary,
	".7z":     CategoryGenericBinary,
	".rar":    CategoryGenericBinary,
	".iso":    CategoryGenericBinary,
	".dmg":    CategoryGenericBinary,
	".pdf":    CategoryGenericBinary,
	".sqlite": CategoryGenericBinary,
	".db":     CategoryGenericBinary,
}

// CategoryOf returns the category of a lowercase ".ext" key.
func CategoryOf(ext string) Category {
	if c, ok := categories[ext]; ok {
		return c
	}
	return CategoryText
}

// ExtensionsIn lists the extensions of a category in sorted order.
func ExtensionsIn(c Category) []string {
	var exts []string
	for ext, cat := range categories {
		if cat == c {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
