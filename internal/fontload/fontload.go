package fontload

import (
	"fmt"
	"os"

	"golang.org/x/image/font/sfnt"
)

// FontFile is the binary data of a font file, together with the font's full name.
type FontFile struct {
	Fontname string
	Filepath string
	Binary   []byte
}

// Load reads a TrueType or OpenType font from a file.
func Load(fontfile string) (*FontFile, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	if len(bytez) == 0 {
		return nil, fmt.Errorf("font file %s is empty", fontfile)
	}
	return &FontFile{
		Fontname: Name(bytez),
		Filepath: fontfile,
		Binary:   bytez,
	}, nil
}

// Name returns the full name of a font from its 'name' table. Package sfnt decodes
// the name records; if it cannot parse the font, Name returns an empty string.
func Name(fbytes []byte) string {
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		return ""
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}
