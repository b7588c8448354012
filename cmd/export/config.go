package export

type ExportConfig struct {
	Force bool `koanf:"force" short:"f" description:"overwrite an existing export file"`
}

func (c *ExportConfig) Validate() error {
	return nil
}
