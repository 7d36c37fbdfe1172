package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fuad-daoud/discord-gateway/client"
	"github.com/fuad-daoud/discord-gateway/config"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/graph"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		dlog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	dlog.Setup(dlog.Config{Level: cfg.LogLevel, Dir: cfg.LogDir, ArchiveCron: cfg.ArchiveCron})

	if cfg.Token == "" {
		dlog.Error("No token configured, set TOKEN or the token config key")
		os.Exit(1)
	}

	c := client.New(client.Config{
		Token:             cfg.Token,
		GatewayURL:        cfg.GatewayURL,
		RestURL:           cfg.RestURL,
		ReconnectBackoff:  cfg.ReconnectBackoff,
		ReconnectAttempts: cfg.ReconnectAttempts,
	})

	c.Dispatcher.Subscribe(events.TypeReady, func(e events.Event) {
		ready := e.(events.Ready)
		dlog.Info("Bot is up!", "user", ready.User.Username)
	})
	c.Dispatcher.Subscribe(events.TypeMention, func(e events.Event) {
		mention := e.(events.Mention)
		dlog.Info("Mentioned", "channel", mention.Message.ChannelID, "author", mention.Message.AuthorID)
	})
	c.Dispatcher.Subscribe(events.TypeGuildCreate, func(e events.Event) {
		guild := e.(events.GuildCreate).Guild
		dlog.Info("Guild available", "id", guild.ID, "name", guild.Name, "members", len(guild.Members))
	})

	if cfg.Neo4j.URI != "" {
		conn, err := graph.Connect(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
		if err != nil {
			dlog.Error("Failed to connect to Neo4j", "err", err)
			os.Exit(1)
		}
		defer conn.Close()
		graph.NewSink(conn, c.Dispatcher)
	}

	if err := c.Open(); err != nil {
		dlog.Error("Failed to open gateway session", "err", err)
		os.Exit(1)
	}
	defer c.Close()

	dlog.Info("Bot is now running. Press CTRL-C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	dlog.Info("Graceful shutdown")
}
