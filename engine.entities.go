package main

// EntityDefinition describes a logical entity known to the engine:
// its name, the prefix of its record ids and its payload validation.
type EntityDefinition struct {
	Name     string
	IDPrefix string
	Validate func(data []byte) error
}

// ValidatePayload checks a raw write payload against the entity rules.
func (def EntityDefinition) ValidatePayload(data []byte) error {
	if def.Validate == nil {
		return nil
	}
	return def.Validate(data)
}

// EntityDefinitions returns all entity definitions served by the engine.
func EntityDefinitions() map[string]EntityDefinition {
	return map[string]EntityDefinition{
		BookEntity: BookDefinition(),
	}
}

// RegisteredEntities returns the names of all entities served by the engine.
func RegisteredEntities() []string {
	defs := EntityDefinitions()
	entities := make([]string, 0, len(defs))
	for name := range defs {
		entities = append(entities, name)
	}
	return entities
}
