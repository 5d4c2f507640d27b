package config

// MergeSettings merges two Settings objects.
// Values from 'overlay' override values in 'base' when set.
// For slices (extensions, restricted paths), a non-empty overlay replaces the
// base list so a narrower source can drop defaults.
func MergeSettings(base, overlay *Settings) *Settings {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	result := *base

	result.AllowedExtensions = mergeStringSlices(base.AllowedExtensions, overlay.AllowedExtensions)
	result.RestrictedPaths = mergeStringSlices(base.RestrictedPaths, overlay.RestrictedPaths)

	if overlay.MaxFileSizeMB != nil {
		result.MaxFileSizeMB = intPtr(*overlay.MaxFileSizeMB)
	}
	if overlay.EnableImages != nil {
		result.EnableImages = boolPtr(*overlay.EnableImages)
	}
	if overlay.EnableManagedBinaries != nil {
		result.EnableManagedBinaries = boolPtr(*overlay.EnableManagedBinaries)
	}
	if overlay.EnableGenericBinaries != nil {
		result.EnableGenericBinaries = boolPtr(*overlay.EnableGenericBinaries)
	}
	if overlay.BaseDir != "" {
		result.BaseDir = overlay.BaseDir
	}
	if overlay.MaxSearchResults != nil {
		result.MaxSearchResults = intPtr(*overlay.MaxSearchResults)
	}

	return &result
}

// mergeStringSlices returns a copy of overlay when it is non-empty, otherwise
// a copy of base, with duplicates removed.
func mergeStringSlices(base, overlay []string) []string {
	src := base
	if len(overlay) > 0 {
		src = overlay
	}

	seen := make(map[string]bool)
	var result []string
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}
