package add

type AddConfig struct {
	Params string `koanf:"params" short:"p" description:"parameters passed to the app when it is opened"`
}

func (c *AddConfig) Validate() error {
	return nil
}
