package seed

// Entry represents a single prompt record in the seed YAML
type Entry struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Content   string   `yaml:"content"`
	Category  string   `yaml:"category"`
	Tags      []string `yaml:"tags"`
	CreatedAt int64    `yaml:"createdAt"` // unix milliseconds, optional
	Favorite  bool     `yaml:"favorite"`
}

// File is the root structure of the seed file
type File struct {
	Prompts []Entry `yaml:"prompts"`
}
