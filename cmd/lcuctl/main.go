package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/lcu-relay/internal/adapters/webapi"
	"github.com/kiryu-dev/lcu-relay/internal/config"
	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/kiryu-dev/lcu-relay/internal/transport/console"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const usage = `usage: lcuctl [-config path] [-env path] <command> [args]

commands:
  join <queue>              create a lobby for queue (name or id)
  leave                     leave the lobby
  start | stop              start or stop matchmaking
  accept | decline          answer the ready check
  dodge                     quit champion select
  kick <summoner id>        kick a lobby member
  invite <summoner id>      invite a summoner to the lobby
  roles <first> [second]    set role preferences
  ranked <puuid>            print solo queue stats
  friends                   print the friend list
`

type api interface {
	domain.ActionClient
	domain.RankedRepository
	domain.FriendRepository
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	cfgPath := flag.String("config", "./config.yml", "path to config")
	envPath := flag.String("env", ".env", "path to env file with client credentials")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	_ = godotenv.Load(*envPath)
	cfg, err := config.New(*cfgPath)
	if err != nil {
		logger.Fatal(err.Error())
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Client.RequestTimeout)
	defer cancel()
	out, err := run(ctx, webapi.New(cfg.Client), flag.Arg(0), flag.Args()[1:])
	if err != nil {
		logger.Error("command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
	if err := jsoniter.NewEncoder(os.Stdout).Encode(out); err != nil {
		logger.Error("failed to write result", zap.Error(err))
	}
}

func run(ctx context.Context, client api, command string, args []string) (any, error) {
	switch command {
	case "join":
		if len(args) != 1 {
			return nil, errors.WithMessage(console.ErrBadArgument, "join wants a queue")
		}
		queue, err := console.ParseQueue(args[0])
		if err != nil {
			return nil, err
		}
		return status(client.JoinLobby(ctx, queue))
	case "leave":
		return status(client.LeaveLobby(ctx))
	case "start":
		return status(client.StartQueue(ctx))
	case "stop":
		return status(client.StopQueue(ctx))
	case "accept":
		return status(client.AcceptMatch(ctx))
	case "decline":
		return status(client.DeclineMatch(ctx))
	case "dodge":
		return status(client.DodgeLobby(ctx))
	case "kick", "invite":
		if len(args) != 1 {
			return nil, errors.WithMessagef(console.ErrBadArgument, "%s wants a summoner id", command)
		}
		id, err := console.ParseSummonerID(args[0])
		if err != nil {
			return nil, err
		}
		if command == "kick" {
			return status(client.KickMember(ctx, id))
		}
		return status(client.InviteMember(ctx, id))
	case "roles":
		prefs, err := parseRoles(args)
		if err != nil {
			return nil, err
		}
		return status(client.SetRolePreferences(ctx, prefs))
	case "ranked":
		if len(args) != 1 {
			return nil, errors.WithMessage(console.ErrBadArgument, "ranked wants a puuid")
		}
		return client.RankedStats(ctx, args[0])
	case "friends":
		presences, err := client.Friends(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]domain.FriendEntry, 0, len(presences))
		for _, p := range presences {
			entries = append(entries, domain.NewFriendEntry(p))
		}
		return entries, nil
	}
	return nil, errors.WithMessagef(console.ErrUnknownCommand, "'%s'", command)
}

func parseRoles(args []string) (domain.PositionPreference, error) {
	if len(args) == 0 || len(args) > 2 {
		return domain.PositionPreference{}, errors.WithMessage(console.ErrBadArgument, "roles wants one or two positions")
	}
	var prefs domain.PositionPreference
	first, err := console.ParsePosition(args[0])
	if err != nil {
		return domain.PositionPreference{}, err
	}
	prefs.First = &first
	if len(args) == 2 {
		second, err := console.ParsePosition(args[1])
		if err != nil {
			return domain.PositionPreference{}, err
		}
		if second == first {
			return domain.PositionPreference{}, errors.WithMessagef(console.ErrBadArgument,
				"roles must differ, got '%s' twice", first)
		}
		prefs.Second = &second
	}
	return prefs, nil
}

func status(resp domain.Response, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]int{"status": resp.StatusCode}, nil
}
