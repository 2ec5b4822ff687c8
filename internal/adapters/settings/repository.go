package settings

import (
	"os"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	gameKey    = "game"
	friendsKey = "friends"

	filePerm = 0o644
)

// Settings are the user preferences persisted between launches.
type Settings struct {
	Game    domain.GameSettings       `yaml:"game"`
	Friends domain.FriendlistSettings `yaml:"friends"`
}

func Defaults() Settings {
	return Settings{
		Friends: domain.FriendlistSettings{Sorting: domain.SortByStatus},
	}
}

type repository struct {
	path string
}

func New(path string) repository {
	return repository{path: path}
}

// Load reads the settings file. A missing file yields the defaults; sections
// absent from the file keep their default values.
func (r repository) Load() (Settings, error) {
	result := Defaults()
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return Settings{}, errors.WithMessagef(err, "read settings '%s'", r.path)
	}
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, errors.WithMessage(err, "decode yaml settings")
	}
	if err := decodeSection(raw, gameKey, &result.Game); err != nil {
		return Settings{}, err
	}
	if err := decodeSection(raw, friendsKey, &result.Friends); err != nil {
		return Settings{}, err
	}
	if result.Friends.Sorting == "" {
		result.Friends.Sorting = domain.SortByStatus
	}
	return result, nil
}

func (r repository) Save(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.WithMessage(err, "encode yaml settings")
	}
	if err := os.WriteFile(r.path, data, filePerm); err != nil {
		return errors.WithMessagef(err, "write settings '%s'", r.path)
	}
	return nil
}

func decodeSection(raw map[string]any, key string, out any) error {
	section, ok := raw[key]
	if !ok || section == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.WithMessage(err, "new settings decoder")
	}
	if err := decoder.Decode(section); err != nil {
		return errors.WithMessagef(err, "decode '%s' settings", key)
	}
	return nil
}
