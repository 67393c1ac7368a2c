package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/btree"

	"github.com/contribsys/irrigator"
	"github.com/contribsys/irrigator/crop"
	"github.com/contribsys/irrigator/region"
	"github.com/contribsys/irrigator/util"
)

/*
Plan is the TOML description of an irrigator and its regions:

	capacity = 10
	log_level = "info"

	[[region]]
	name = "north"
	rank = 10
	priority = "moisture"
	polarity = "min"
	structure = "leftist"
	crops = 20
	seed = 42
*/
type Plan struct {
	Capacity      int          `toml:"capacity"`
	ReservedSlots *int         `toml:"reserved_slots"`
	LogLevel      string       `toml:"log_level"`
	Regions       []RegionPlan `toml:"region"`
}

type RegionPlan struct {
	Name      string `toml:"name"`
	Rank      int    `toml:"rank"`
	Priority  string `toml:"priority"`
	Polarity  string `toml:"polarity"`
	Structure string `toml:"structure"`
	Crops     int    `toml:"crops"`
	Seed      int64  `toml:"seed"`
}

func LoadPlan(path string) (*Plan, error) {
	var p Plan
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("Unable to parse %s: %w", path, err)
	}
	return validate(&p, md)
}

func ParsePlan(data string) (*Plan, error) {
	var p Plan
	md, err := toml.Decode(data, &p)
	if err != nil {
		return nil, fmt.Errorf("Unable to parse plan: %w", err)
	}
	return validate(&p, md)
}

func validate(p *Plan, md toml.MetaData) (*Plan, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("Unknown plan keys: %s", strings.Join(keys, ", "))
	}
	if p.Capacity <= 0 {
		return nil, fmt.Errorf("Invalid capacity: %d", p.Capacity)
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}

	seen := btree.NewMap[string, int](0)
	for i, rp := range p.Regions {
		if rp.Name == "" {
			return nil, fmt.Errorf("Region #%d has no name", i+1)
		}
		if prev, ok := seen.Get(rp.Name); ok {
			return nil, fmt.Errorf("Duplicate region %q (#%d and #%d)", rp.Name, prev, i+1)
		}
		seen.Set(rp.Name, i+1)

		if rp.Rank <= 0 {
			return nil, fmt.Errorf("Region %q: invalid rank %d", rp.Name, rp.Rank)
		}
		if rp.Crops < 0 {
			return nil, fmt.Errorf("Region %q: invalid crop count %d", rp.Name, rp.Crops)
		}
		if _, err := crop.LookupPriorityFn(rp.Priority); err != nil {
			return nil, fmt.Errorf("Region %q: %w", rp.Name, err)
		}
		if _, err := region.ParsePolarity(rp.Polarity); err != nil {
			return nil, fmt.Errorf("Region %q: %w", rp.Name, err)
		}
		if _, err := region.ParseStructure(rp.Structure); err != nil {
			return nil, fmt.Errorf("Region %q: %w", rp.Name, err)
		}
	}
	return p, nil
}

// Region builds the region described by rp, filled with its generated crops.
func (rp RegionPlan) Region() (*region.Region[crop.Crop], error) {
	prio, err := crop.LookupPriorityFn(rp.Priority)
	if err != nil {
		return nil, err
	}
	polarity, err := region.ParsePolarity(rp.Polarity)
	if err != nil {
		return nil, err
	}
	structure, err := region.ParseStructure(rp.Structure)
	if err != nil {
		return nil, err
	}

	r := region.New(prio, polarity, structure, rp.Rank)
	crop.NewGenerator(rp.Seed).Fill(r, rp.Crops)
	return r, nil
}

// Build creates the irrigator and admits every region of the plan.
func (p *Plan) Build(logger util.Logger) (*irrigator.Irrigator[crop.Crop], error) {
	opts := []irrigator.Option{irrigator.WithLogger(logger)}
	if p.ReservedSlots != nil {
		opts = append(opts, irrigator.WithReservedSlots(*p.ReservedSlots))
	}

	irr, err := irrigator.New[crop.Crop](p.Capacity, opts...)
	if err != nil {
		return nil, err
	}

	for _, rp := range p.Regions {
		r, err := rp.Region()
		if err != nil {
			return nil, fmt.Errorf("Region %q: %w", rp.Name, err)
		}
		if !irr.AddRegion(r) {
			return nil, fmt.Errorf("Region %q does not fit, irrigator holds at most %d regions", rp.Name, irr.Cap())
		}
		logger.WithField("rank", rp.Rank).WithField("crops", r.Len()).Debugf("Added region %s", rp.Name)
	}
	return irr, nil
}
