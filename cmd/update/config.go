package update

type UpdateConfig struct {
	All bool `koanf:"all" short:"a" description:"search for all registered apps"`
}

func (c *UpdateConfig) Validate() error {
	return nil
}
