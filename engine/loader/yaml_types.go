package loader

// yamlDocument is the on-disk layout of an object-set description.
type yamlDocument struct {
	Name        string           `yaml:"name"`
	Skeleton    *yamlSkeleton    `yaml:"skeleton"`
	TextKeys    *yamlTextKeys    `yaml:"text_keys"`
	Channels    []yamlChannel    `yaml:"channels"`
	Curves      []yamlCurve      `yaml:"curves"`
	Renderables []yamlAttachment `yaml:"renderables"`
	Particles   []yamlAttachment `yaml:"particles"`
}

type yamlSkeleton struct {
	Bones []boneDesc `yaml:"bones"`
}

// yamlTextKeys holds the timeline labels and the bone they are attached to.
type yamlTextKeys struct {
	Bone string        `yaml:"bone"`
	Keys []yamlTextKey `yaml:"keys"`
}

type yamlTextKey struct {
	Time  float32 `yaml:"time"`
	Label string  `yaml:"label"`
}

type yamlChannel struct {
	Bone        string          `yaml:"bone"`
	Translation []yamlVectorKey `yaml:"translation"`
	Rotation    []yamlQuatKey   `yaml:"rotation"`
	Scale       []yamlVectorKey `yaml:"scale"`
}

type yamlVectorKey struct {
	Time  float32    `yaml:"time"`
	Value [3]float32 `yaml:"value"`
}

type yamlQuatKey struct {
	Time  float32    `yaml:"time"`
	Value [4]float32 `yaml:"value"`
}

type yamlCurve struct {
	Name  string          `yaml:"name"`
	Clock string          `yaml:"clock"`
	Keys  []yamlScalarKey `yaml:"keys"`
}

type yamlScalarKey struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

type yamlAttachment struct {
	Name string `yaml:"name"`
	Bone string `yaml:"bone"`
}
