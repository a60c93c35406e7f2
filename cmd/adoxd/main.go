package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"adox/backup"
	"adox/config"
	"adox/internal/auth"
	"adox/internal/logging"
	"adox/internal/web"
	"adox/report"
	"adox/transaction"
	"adox/transaction/postgres"
	"adox/transaction/sqlite"
	"adox/user"
)

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "adoxd: the Adox exchange-office portal",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	var err error

	err = setupFlags(cmd)
	if err != nil {
		log.Fatal(err)
	}

	err = cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

type cfg struct {
	HTTPAddr      string
	DBDriver      string
	DBPath        string
	ACLModelFile  string
	ACLPolicyFile string
	LogLevel      string
	Development   bool
}

type cli struct {
	cfg cfg
}

// Reads the config fields from flags or a file
func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	// optional .env next to the binary
	_ = godotenv.Load()

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}

	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// allow non-existent config file
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return err
		}
	}

	c.cfg.HTTPAddr = viper.GetString("http-addr")
	c.cfg.DBDriver = viper.GetString("db-driver")
	c.cfg.DBPath = viper.GetString("db-path")
	c.cfg.ACLModelFile = viper.GetString("acl-model-file")
	c.cfg.ACLPolicyFile = viper.GetString("acl-policy-file")
	c.cfg.LogLevel = viper.GetString("log-level")
	c.cfg.Development = viper.GetBool("development")

	return nil
}

func (c *cli) openDB() (*sqlx.DB, error) {
	if c.cfg.DBDriver == "postgres" {
		pgCfg, err := postgres.Parse()
		if err != nil {
			return nil, err
		}
		return postgres.Connect(pgCfg)
	}
	return sqlite.Open(c.cfg.DBPath)
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(c.cfg.LogLevel, c.cfg.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := c.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ledger, err := transaction.NewSQLRepo(db)
	if err != nil {
		return err
	}
	backups, err := backup.NewSQLRepo(db)
	if err != nil {
		return err
	}
	users, err := user.NewSQLRepo(db)
	if err != nil {
		return err
	}
	if err := user.Seed(context.Background(), users); err != nil {
		return err
	}

	authorizer := auth.New(c.cfg.ACLModelFile, c.cfg.ACLPolicyFile)
	reports := report.NewEngine(ledger, authorizer)
	manager := backup.NewManager(ledger, backups, authorizer, logger.Named("backup"))

	srv := web.NewServer(c.cfg.HTTPAddr, &web.Config{
		Ledger:  ledger,
		Reports: reports,
		Backups: manager,
		Users:   users,
		Auth:    authorizer,
		Logger:  logger.Named("web"),
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info("portal listening",
			zap.String("addr", c.cfg.HTTPAddr),
			zap.String("db_driver", c.cfg.DBDriver),
		)
		errc <- srv.ListenAndServe()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-sigc:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func setupFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()

	fs.String("config-file", "", "Path to config file")
	fs.String("http-addr", "127.0.0.1:8080", "Address the portal listens on")
	fs.String("db-driver", "sqlite", "Database driver (sqlite or postgres)")
	fs.String("db-path", "adox.db", "Path to the sqlite database file")
	fs.String("acl-model-file", config.ACLModelFile, "Path to ACL model")
	fs.String("acl-policy-file", config.ACLPolicyFile, "Path to ACL policy")
	fs.String("log-level", "info", "Log level")
	fs.Bool("development", false, "Human-readable console logs")

	return viper.BindPFlags(cmd.Flags())
}
