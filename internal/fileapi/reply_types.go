package fileapi

// Wire types for the CMake file-api v1 reply JSON. Only the fields cmq reads
// are declared; the reply carries much more.

type replyIndex struct {
	Objects []replyObject `json:"objects"`
}

type replyObject struct {
	Kind    string `json:"kind"`
	Version struct {
		Major int `json:"major"`
	} `json:"version"`
	JSONFile string `json:"jsonFile"`
}

type cmCodemodel struct {
	Configurations []cmConfiguration `json:"configurations"`
}

type cmConfiguration struct {
	Name     string        `json:"name"`
	Projects []cmProject   `json:"projects"`
	Targets  []cmTargetRef `json:"targets"`
}

type cmProject struct {
	Name string `json:"name"`
}

type cmTargetRef struct {
	Name         string `json:"name"`
	JSONFile     string `json:"jsonFile"`
	ProjectIndex int    `json:"projectIndex"`
}

type cmTarget struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Paths struct {
		Source string `json:"source"`
	} `json:"paths"`
	Sources       []cmSource       `json:"sources"`
	CompileGroups []cmCompileGroup `json:"compileGroups"`
	Artifacts     []cmArtifact     `json:"artifacts"`
}

type cmSource struct {
	Path string `json:"path"`
}

type cmCompileGroup struct {
	SourceIndexes []int       `json:"sourceIndexes"`
	Language      string      `json:"language"`
	Includes      []cmInclude `json:"includes"`
}

type cmInclude struct {
	Path string `json:"path"`
}

type cmArtifact struct {
	Path string `json:"path"`
}
