package webapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/lcu-relay/internal/config"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/pkg/errors"
)

const (
	lobbyEndpoint               = "/lol-lobby/v2/lobby"
	searchEndpoint              = "/lol-lobby/v2/lobby/matchmaking/search"
	acceptEndpoint              = "/lol-matchmaking/v1/ready-check/accept"
	declineEndpoint             = "/lol-matchmaking/v1/ready-check/decline"
	membersEndpoint             = "/lol-lobby/v2/lobby/members/"
	invitationsEndpoint         = "/lol-lobby/v2/lobby/invitations"
	positionPreferencesEndpoint = "/lol-lobby/v2/lobby/members/localMember/position-preferences"
	invokeEndpoint              = "/lol-login/v1/session/invoke"
	rankedStatsEndpoint         = "/lol-ranked/v1/ranked-stats/"
	friendsEndpoint             = "/lol-chat/v1/friends"

	soloQueueKey = "RANKED_SOLO_5x5"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNoSoloQueue      = errors.New("ranked stats without solo queue entry")
)

type repository struct {
	cli      *http.Client
	base     string
	username string
	password string
}

func New(cfg config.ClientConfig) repository {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify} //nolint:gosec
	base := url.URL{Scheme: "https", Host: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))}
	return repository{
		cli:      &http.Client{Timeout: cfg.RequestTimeout, Transport: transport},
		base:     base.String(),
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (r repository) JoinLobby(ctx context.Context, queue domain.QueueID) (domain.Response, error) {
	return r.call(ctx, http.MethodPost, lobbyEndpoint, map[string]domain.QueueID{"queueId": queue})
}

func (r repository) LeaveLobby(ctx context.Context) (domain.Response, error) {
	return r.call(ctx, http.MethodDelete, lobbyEndpoint, nil)
}

func (r repository) StartQueue(ctx context.Context) (domain.Response, error) {
	return r.call(ctx, http.MethodPost, searchEndpoint, nil)
}

func (r repository) StopQueue(ctx context.Context) (domain.Response, error) {
	return r.call(ctx, http.MethodDelete, searchEndpoint, nil)
}

func (r repository) AcceptMatch(ctx context.Context) (domain.Response, error) {
	return r.call(ctx, http.MethodPost, acceptEndpoint, nil)
}

func (r repository) DeclineMatch(ctx context.Context) (domain.Response, error) {
	return r.call(ctx, http.MethodPost, declineEndpoint, nil)
}

func (r repository) KickMember(ctx context.Context, summonerID int64) (domain.Response, error) {
	endpoint := membersEndpoint + strconv.FormatInt(summonerID, 10) + "/kick"
	return r.call(ctx, http.MethodPost, endpoint, nil)
}

func (r repository) InviteMember(ctx context.Context, summonerID int64) (domain.Response, error) {
	body := []map[string]int64{{"toSummonerId": summonerID}}
	return r.call(ctx, http.MethodPost, invitationsEndpoint, body)
}

func (r repository) SetRolePreferences(ctx context.Context, prefs domain.PositionPreference) (domain.Response, error) {
	return r.call(ctx, http.MethodPut, positionPreferencesEndpoint, prefs)
}

// DodgeLobby quits champion select through the login session proxy.
func (r repository) DodgeLobby(ctx context.Context) (domain.Response, error) {
	query := url.Values{}
	query.Set("destination", "lcdsServiceProxy")
	query.Set("method", "call")
	query.Set("args", `["","teambuilder-draft","quitV2",""]`)
	return r.call(ctx, http.MethodPost, invokeEndpoint+"?"+query.Encode(), nil)
}

func (r repository) RankedStats(ctx context.Context, puuid string) (domain.RankedStatus, error) {
	resp, err := r.call(ctx, http.MethodGet, rankedStatsEndpoint+url.PathEscape(puuid), nil)
	if err != nil {
		return domain.RankedStatus{}, err
	}
	var stats struct {
		QueueMap map[string]domain.RankedQueue `json:"queueMap"`
	}
	if err := jsoniter.Unmarshal(resp.Body, &stats); err != nil {
		return domain.RankedStatus{}, errors.WithMessage(err, "decode ranked stats")
	}
	solo, ok := stats.QueueMap[soloQueueKey]
	if !ok {
		return domain.RankedStatus{}, errors.WithMessagef(ErrNoSoloQueue, "puuid '%s'", puuid)
	}
	return domain.RankedStatus{SoloQueue: solo}, nil
}

func (r repository) Friends(ctx context.Context) ([]domain.FriendPresence, error) {
	resp, err := r.call(ctx, http.MethodGet, friendsEndpoint, nil)
	if err != nil {
		return nil, err
	}
	var friends []domain.FriendPresence
	if err := jsoniter.Unmarshal(resp.Body, &friends); err != nil {
		return nil, errors.WithMessage(err, "decode friends")
	}
	return friends, nil
}

func (r repository) call(ctx context.Context, method string, endpoint string, payload any) (domain.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := jsoniter.Marshal(payload)
		if err != nil {
			return domain.Response{}, errors.WithMessage(err, "marshal json body")
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base+endpoint, body)
	if err != nil {
		return domain.Response{}, errors.WithMessagef(err, "new %s request", method)
	}
	req.SetBasicAuth(r.username, r.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.cli.Do(req)
	if err != nil {
		return domain.Response{}, errors.WithMessagef(err, "call http endpoint '%s'", endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, errors.WithMessage(err, "read response body")
	}
	result := domain.Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, errors.WithMessagef(ErrUnexpectedStatus, "'%s' %s %s", resp.Status, method, endpoint)
	}
	return result, nil
}
