package console

import (
	"strconv"
	"strings"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
)

var queues = map[string]domain.QueueID{
	"draft": domain.QueueDraft,
	"solo":  domain.QueueSolo,
	"blind": domain.QueueBlind,
	"flex":  domain.QueueFlex,
	"aram":  domain.QueueAram,
	"clash": domain.QueueClash,
}

var positions = map[string]domain.Position{
	"top":     domain.Top,
	"jungle":  domain.Jungle,
	"jg":      domain.Jungle,
	"mid":     domain.Middle,
	"middle":  domain.Middle,
	"bot":     domain.Bottom,
	"bottom":  domain.Bottom,
	"adc":     domain.Bottom,
	"support": domain.Utility,
	"utility": domain.Utility,
	"fill":    domain.Fill,
}

var sortings = map[string]domain.Sorting{
	string(domain.SortByStatus):      domain.SortByStatus,
	string(domain.SortByName):        domain.SortByName,
	string(domain.SortByNameReverse): domain.SortByNameReverse,
	string(domain.SortBySearch):      domain.SortBySearch,
}

// ParseQueue accepts a queue name or its numeric id.
func ParseQueue(s string) (domain.QueueID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if queue, ok := queues[s]; ok {
		return queue, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WithMessagef(ErrBadArgument, "queue '%s'", s)
	}
	return domain.QueueID(id), nil
}

func ParsePosition(s string) (domain.Position, error) {
	position, ok := positions[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", errors.WithMessagef(ErrBadArgument, "position '%s'", s)
	}
	return position, nil
}

func ParseSummonerID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.WithMessagef(ErrBadArgument, "summoner id '%s'", s)
	}
	return id, nil
}

func parseSorting(s string) (domain.Sorting, error) {
	sorting, ok := sortings[strings.ToLower(s)]
	if !ok {
		return "", errors.WithMessagef(ErrBadArgument, "sorting '%s'", s)
	}
	return sorting, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, errors.WithMessagef(ErrBadArgument, "switch '%s'", s)
}
