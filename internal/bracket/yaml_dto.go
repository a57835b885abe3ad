package bracket

type YAMLCatalog struct {
	Brackets []YAMLBracket `yaml:"brackets"`
}

type YAMLBracket struct {
	Name      string     `yaml:"name"`
	From      *YAMLUnits `yaml:"from"`
	To        *YAMLUnits `yaml:"to"`
	OrOlder   bool       `yaml:"or_older"`
	OrYounger bool       `yaml:"or_younger"`
}

type YAMLUnits struct {
	Years  *int `yaml:"years"`
	Months *int `yaml:"months"`
	Days   *int `yaml:"days"`
}
