package types

// GenerateParams defines the fixed inference parameters passed to a
// text-to-image model for a single generation
type GenerateParams struct {
	Seed     int
	Steps    int
	Guidance float64
	Width    int
	Height   int
}

// ManifestEntry records one generated image in the run manifest
type ManifestEntry struct {
	Index   int    `json:"index"`
	Prompt  string `json:"prompt"`
	Seed    int    `json:"seed"`
	File    string `json:"file"`
	Caption string `json:"caption,omitempty"`
}
