package seedfile

// Entry is one bookmark in the seed file.
type Entry struct {
	Label   string `yaml:"label"`
	Address string `yaml:"address"`
}

// File is the root structure of the seed file:
//
//	bookmarks:
//	  - label: Main RP
//	    address: abc123
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
