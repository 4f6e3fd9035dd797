package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/atelier-booking/internal/domain"
)

//go:embed data/formations.yaml
var embeddedCatalog []byte

// LoadBase читает базовый каталог из файла path, либо встроенный, если path пустой
func LoadBase(path string) ([]domain.Formation, error) {
	data := embeddedCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, path, err)
		}
		data = raw
	}
	return ParseBase(data)
}

// ParseBase разбирает YAML каталога и проверяет уникальность идентификаторов
func ParseBase(data []byte) ([]domain.Formation, error) {
	var formations []domain.Formation
	if err := yaml.Unmarshal(data, &formations); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	formationIDs := make(map[string]struct{}, len(formations))
	sessionIDs := make(map[string]struct{})
	for _, f := range formations {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: formation without id", ErrInvalidCatalog)
		}
		if _, ok := formationIDs[f.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate formation id %s", ErrInvalidCatalog, f.ID)
		}
		formationIDs[f.ID] = struct{}{}

		for _, s := range f.Sessions {
			if s.ID == "" {
				return nil, fmt.Errorf("%w: session without id in formation %s", ErrInvalidCatalog, f.ID)
			}
			// availability и reservations индексируются только по sessionId
			if _, ok := sessionIDs[s.ID]; ok {
				return nil, fmt.Errorf("%w: duplicate session id %s", ErrInvalidCatalog, s.ID)
			}
			sessionIDs[s.ID] = struct{}{}
		}
	}
	return formations, nil
}
