package bwcdkbuildspec

// Document is the amplify.yml layout. Field order is the rendering order.
type Document struct {
	Version      int           `yaml:"version" json:"version"`
	Applications []Application `yaml:"applications" json:"applications"`
}

type Application struct {
	AppRoot  string   `yaml:"appRoot" json:"appRoot"`
	Frontend Frontend `yaml:"frontend" json:"frontend"`
}

type Frontend struct {
	Phases    Phases    `yaml:"phases" json:"phases"`
	Artifacts Artifacts `yaml:"artifacts" json:"artifacts"`
	Cache     Cache     `yaml:"cache" json:"cache"`
}

type Phases struct {
	PreBuild  CommandList `yaml:"preBuild" json:"preBuild"`
	Build     CommandList `yaml:"build" json:"build"`
	PostBuild CommandList `yaml:"postBuild" json:"postBuild"`
}

type CommandList struct {
	Commands []string `yaml:"commands" json:"commands"`
}

type Artifacts struct {
	BaseDirectory string   `yaml:"baseDirectory" json:"baseDirectory"`
	Files         []string `yaml:"files" json:"files"`
}

type Cache struct {
	Paths []string `yaml:"paths" json:"paths"`
}
