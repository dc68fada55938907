package domain

// CustomLogoKey is the config record field holding the stored logo asset name.
const CustomLogoKey = "customLogo"

// ConfigRecord is the singleton site configuration. Only CustomLogoKey is owned by
// this service; every other key is carried through writes untouched.
type ConfigRecord map[string]interface{}

func NewConfigRecord() ConfigRecord {
	return ConfigRecord{CustomLogoKey: ""}
}

// CustomLogo returns the logo asset name, or "" when no logo is set.
func (c ConfigRecord) CustomLogo() string {
	name, _ := c[CustomLogoKey].(string)
	return name
}

func (c ConfigRecord) SetCustomLogo(name string) {
	c[CustomLogoKey] = name
}

func (c ConfigRecord) Clone() ConfigRecord {
	out := make(ConfigRecord, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
