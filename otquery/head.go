package otquery

import (
	"fmt"
	"time"

	"github.com/npillmayer/ttf/ot"
)

// HeadTableInfo summarizes table 'head' for display.
type HeadTableInfo struct {
	Version          string
	FontRevision     float64
	MagicNumber      uint32
	Flags            uint16
	UnitsPerEm       uint16
	Created          time.Time
	Modified         time.Time
	BBox             BoundingBox // bounding box of all glyphs
	MacStyle         uint16
	LowestRecPPEM    uint16
	IndexToLocFormat ot.LocaFormat
}

// epoch of font timestamps
var fontEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if the table is missing or malformed.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if otf == nil {
		return info, false
	}
	head, err := otf.Head()
	if err != nil {
		tracer().Infof("cannot decode table 'head': %v", err)
		return info, false
	}
	info.Version = fmt.Sprintf("%d.%d", head.MajorVersion, head.MinorVersion)
	info.FontRevision = head.FontRevision.Float()
	info.MagicNumber = head.MagicNumber
	info.Flags = head.Flags
	info.UnitsPerEm = head.UnitsPerEm
	info.Created = fontEpoch.Add(time.Duration(head.Created) * time.Second)
	info.Modified = fontEpoch.Add(time.Duration(head.Modified) * time.Second)
	info.BBox = bbox(head.XMin, head.YMin, head.XMax, head.YMax)
	info.MacStyle = head.MacStyle
	info.LowestRecPPEM = head.LowestRecPPEM
	info.IndexToLocFormat = head.IndexToLocFormat
	return info, true
}
