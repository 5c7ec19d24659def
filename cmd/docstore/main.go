package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-blog-sync/internal/config"
	"github.com/MKhiriev/go-blog-sync/internal/docstore"
	"github.com/MKhiriev/go-blog-sync/internal/handler"
	"github.com/MKhiriev/go-blog-sync/internal/logger"
	"github.com/MKhiriev/go-blog-sync/internal/server"
	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// mintToken is registered before the config flags are parsed.
var mintToken = flag.String("mint-token", "", "Print a bearer token for uid:email[:name] and exit")

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	// stdout is reserved for -mint-token output
	fmt.Fprint(os.Stderr, buildInfo)

	log := logger.NewLogger("blog-docstore")
	cfg, err := config.GetDocstoreConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildInfo.BuildVersion()
	}

	if *mintToken != "" {
		identity, err := parseMintSpec(*mintToken)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -mint-token value")
		}
		token, err := utils.GenerateJWTToken(cfg.Server.TokenIssuer, identity, cfg.Server.TokenDuration, cfg.Server.TokenSignKey)
		if err != nil {
			log.Fatal().Err(err).Msg("error minting token")
		}
		fmt.Println(token)
		return
	}

	store := docstore.NewStore(log, docstore.WithRules(docstore.BlogRules{OwnerEmail: cfg.Server.OwnerEmail}))
	if err = store.ProvisionIndexes(cfg.Server.Indexes...); err != nil {
		log.Fatal().Err(err).Msg("error provisioning indexes")
	}

	handlers, err := handler.NewHandlers(store, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, store.Close, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func parseMintSpec(raw string) (models.Identity, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return models.Identity{}, fmt.Errorf("want uid:email[:name], got %q", raw)
	}

	identity := models.Identity{UserID: parts[0], Email: parts[1]}
	if len(parts) == 3 {
		identity.Name = parts[2]
	}
	return identity, nil
}
