package open

type OpenConfig struct {
	Refresh bool `koanf:"refresh" short:"r" description:"search for the app again instead of using the stored path"`
}

func (c *OpenConfig) Validate() error {
	return nil
}
