package targets

import (
	"encoding/json"

	"github.com/Adda-Baaj/simple-uber/pkg/uber"
	"gopkg.in/yaml.v3"
)

// Coordinate is a latitude or longitude that may be written as a number or a
// numeric string in config files.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return c.set(v)
}

func (c *Coordinate) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}
	return c.set(v)
}

func (c *Coordinate) set(v interface{}) error {
	f, err := uber.ParseCoordinate(v)
	if err != nil {
		return err
	}
	*c = Coordinate(f)
	return nil
}

func (c Coordinate) Float64() float64 {
	return float64(c)
}
