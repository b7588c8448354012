package reset

type ResetConfig struct {
	Yes bool `koanf:"yes" short:"y" description:"confirm that the registry database should be deleted"`
}

func (c *ResetConfig) Validate() error {
	return nil
}
