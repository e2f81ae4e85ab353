package provider

// Config is a named model configuration.
type Config struct {
	ID          string  `yaml:"id" json:"id"`
	Description string  `yaml:"description" json:"description"`
	Options     Options `yaml:"options"`
}

// Configs is a slice of Config pointers.
type Configs []*Config

// Find searches for a model by its ID.
func (m Configs) Find(id string) *Config {
	for _, model := range m {
		if model.ID == id {
			return model
		}
	}
	return nil
}
