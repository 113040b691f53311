package catalog

import (
	"sort"

	"snakeidle/internal/models"
)

// Order returns the records for presentation using Numeric comparison.
func Order(records []models.VersionRecord) []models.VersionRecord {
	return OrderWith(records, Numeric)
}

// OrderWith puts active releases first, newest first by mode, followed by
// legacy releases in the order they appear in the catalog. The input slice is
// not modified.
func OrderWith(records []models.VersionRecord, mode OrderMode) []models.VersionRecord {
	active := make([]models.VersionRecord, 0, len(records))
	var legacy []models.VersionRecord
	for _, r := range records {
		if r.Legacy {
			legacy = append(legacy, r)
			continue
		}
		active = append(active, r)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return mode.compare(active[i].Version, active[j].Version) > 0
	})
	return append(active, legacy...)
}

// Latest returns the newest active release.
func Latest(records []models.VersionRecord, mode OrderMode) (models.VersionRecord, bool) {
	ordered := OrderWith(records, mode)
	if len(ordered) == 0 || ordered[0].Legacy {
		return models.VersionRecord{}, false
	}
	return ordered[0], true
}

// IndexOf returns the position of the first record with version, or -1.
func IndexOf(records []models.VersionRecord, version string) int {
	for i, r := range records {
		if r.Version == version {
			return i
		}
	}
	return -1
}

// Without returns records minus every entry with the given version.
func Without(records []models.VersionRecord, version string) []models.VersionRecord {
	out := make([]models.VersionRecord, 0, len(records))
	for _, r := range records {
		if r.Version != version {
			out = append(out, r)
		}
	}
	return out
}
