package list

type ListConfig struct {
	Full bool `koanf:"full" short:"f" description:"show all stored fields"`
}

func (c *ListConfig) Validate() error {
	return nil
}
