package depot

// Entry is the root of a persisted project. Parsing it is left to the
// serialization layer; the core only consumes the resolved values.
type Entry struct {
	Textures []string     `json:"textures" jsonschema:"description=Texture names loaded before any space"`
	Spaces   []SpaceEntry `json:"spaces"`
}

type SpaceEntry struct {
	Name  string `json:"name" jsonschema:"required"`
	Scene string `json:"scene" jsonschema:"required,description=Name of the scene the space loads"`
}

type Scene struct {
	Name  string              `json:"name"`
	Pools map[string]PoolInfo `json:"pools"`
}

type PoolInfo struct {
	PoolName            string   `json:"poolName" jsonschema:"required"`
	ArchetypeName       string   `json:"archetypeName" jsonschema:"required"`
	Capacity            int      `json:"capacity" jsonschema:"required,minimum=0"`
	StartingObjectNames []string `json:"startingObjectNames,omitempty" jsonschema:"description=Object archetypes stamped into the pool on load"`
}

// Load builds every space of the entry, resolving scene names through scenes.
// newSpace is called once per space entry, in order.
func (e Entry) Load(scenes map[string]Scene, newSpace func(name string) *Space) ([]*Space, error) {
	spaces := make([]*Space, 0, len(e.Spaces))
	for _, se := range e.Spaces {
		scene, ok := scenes[se.Scene]
		if !ok {
			return nil, SceneNotFoundError{Space: se.Name, Scene: se.Scene}
		}
		space := newSpace(se.Name)
		if err := space.LoadScene(scene); err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}
	return spaces, nil
}
