/*
Package crop is a sample work item for the irrigator: a crop reporting its
temperature, soil moisture, time of day and plant type, plus the two
priority functions used to schedule watering.
*/
package crop

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"

	"github.com/contribsys/irrigator/region"
)

const (
	MinCropID = 100000
	MaxCropID = 999999

	MinTemp = 30
	MaxTemp = 110

	MinMoisture = 1
	MaxMoisture = 100
)

type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Noon
	Afternoon
	Night
)

var timeNames = [...]string{"MORNING", "NOON", "AFTERNOON", "NIGHT"}

func (t TimeOfDay) String() string {
	if t < Morning || t > Night {
		return "UNKNOWN"
	}
	return timeNames[t]
}

type Kind int

const (
	Bean Kind = iota
	Corn
	Melon
	Pea
	Pepper
	Potato
	Wheat
)

var kindNames = [...]string{"BEAN", "CORN", "MELON", "PEA", "PEPPER", "POTATO", "WHEAT"}

func (k Kind) String() string {
	if k < Bean || k > Wheat {
		return "UNKNOWN"
	}
	return kindNames[k]
}

type Crop struct {
	ID          int
	Temperature int
	Moisture    int
	Time        TimeOfDay
	Kind        Kind
}

func (c Crop) String() string {
	return fmt.Sprintf("Crop ID: %d, current temperature: %d, current soil moisture: %d%%, current time: %s, plant type: %s",
		c.ID, c.Temperature, c.Moisture, c.Time, c.Kind)
}

/*
Temperature favours hot crops of thirsty kinds; meant for a Max region.
Valid priorities fall in [30, 116], anything else is 0.
*/
var Temperature = region.NewPriorityFn("temperature", func(c Crop) int {
	p := c.Temperature + int(c.Kind)
	if p < MinTemp+int(Bean) || p > MaxTemp+int(Wheat) {
		return 0
	}
	return p
})

/*
Moisture favours dry soil early in the day; meant for a Min region.
Valid priorities fall in [1, 103], anything else is 0.
*/
var Moisture = region.NewPriorityFn("moisture", func(c Crop) int {
	p := c.Moisture + int(c.Time)
	if p < MinMoisture+int(Morning) || p > MaxMoisture+int(Night) {
		return 0
	}
	return p
})

var registry = func() *btree.Map[string, *region.PriorityFn[Crop]] {
	m := btree.NewMap[string, *region.PriorityFn[Crop]](0)
	m.Set(Temperature.Name(), Temperature)
	m.Set(Moisture.Name(), Moisture)
	return m
}()

// PriorityFns lists the registered priority function names in order.
func PriorityFns() []string {
	return registry.Keys()
}

// LookupPriorityFn returns the shared priority function registered as name.
func LookupPriorityFn(name string) (*region.PriorityFn[Crop], error) {
	fn, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("Unknown priority function %q, expected one of: %s",
			name, strings.Join(registry.Keys(), ", "))
	}
	return fn, nil
}
