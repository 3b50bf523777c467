// Package config loads application and provider configuration.
//
// Environment values are parsed into tagged structs with
// github.com/caarlos0/env/v11. The default .env file in the working
// directory is loaded once through github.com/joho/godotenv before the first
// parse; a missing file is not an error.
//
//	type ServerConfig struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	var srv ServerConfig
//	if err := config.Load(&srv); err != nil {
//		return err
//	}
//
// Provider credentials usually share one struct type per driver, so Load
// accepts a prefix:
//
//	var google socialite.ProviderConfig
//	err := config.Load(&google, config.WithPrefix("GOOGLE_"))
//
// # Driver tables
//
// LoadProviders reads a YAML table of drivers, each naming a built-in kind
// and its credentials, and RegisterProviders puts the whole table into a
// socialite.Manager:
//
//	providers:
//	  google:
//	    kind: google
//	    client_id: ...
//	    client_secret: ...
//	    redirect_url: https://example.com/auth/google/callback
//	  github-work:
//	    kind: github
//	    scopes:
//	      - user:email
//	      - read:org
//
// String values in the file may reference environment variables with
// ${NAME}; they are expanded before decoding.
package config
