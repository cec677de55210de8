package otquery

import (
	"github.com/npillmayer/ttf/ot"
)

// MaxPTableInfo is a summary of table 'maxp'.
// For version 1.0 tables, the TrueType profile fields are included.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	HasExtendedProfile bool
	ot.MaxPV1          // TrueType profile fields (version 1.0 only)
}

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if the table is missing or malformed.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if otf == nil {
		return info, false
	}
	maxp, err := otf.MaxP()
	if err != nil {
		tracer().Infof("cannot decode table 'maxp': %v", err)
		return info, false
	}
	info.VersionFixed = maxp.Version.Raw()
	info.NumGlyphs = maxp.NumGlyphs
	info.MaxPV1, info.HasExtendedProfile = maxp.V1.Unwrap()
	return info, true
}
