package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type Rabbit struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type Server struct {
	Port int
}

type Config struct {
	Database Database
	Rabbit   Rabbit
	Redis    Redis
	Server   Server
}

// Load reads the flat two-level YAML config. Purpose-built parser: top-level
// sections (database, rabbitmq, redis, server) with key: value pairs, no
// nesting beyond that.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := Config{
		Database: Database{Port: 5432, SSLMode: "disable", MaxConns: 10},
		Rabbit:   Rabbit{Port: 5672, VHost: "/"},
		Redis:    Redis{Port: 6379},
		Server:   Server{Port: 3000},
	}

	var section string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.Trim(strings.TrimSpace(kv[1]), `"'`)

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = val
			case "port":
				cfg.Database.Port = atoi(val, 5432)
			case "user":
				cfg.Database.User = val
			case "password":
				cfg.Database.Password = val
			case "database":
				cfg.Database.Name = val
			case "sslmode":
				if val != "" {
					cfg.Database.SSLMode = val
				}
			case "max_conns":
				cfg.Database.MaxConns = atoi(val, 10)
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.Rabbit.Host = val
			case "port":
				cfg.Rabbit.Port = atoi(val, 5672)
			case "user":
				cfg.Rabbit.User = val
			case "password":
				cfg.Rabbit.Password = val
			case "vhost":
				if val != "" {
					cfg.Rabbit.VHost = val
				}
			}
		case "redis":
			switch key {
			case "host":
				cfg.Redis.Host = val
			case "port":
				cfg.Redis.Port = atoi(val, 6379)
			case "password":
				cfg.Redis.Password = val
			case "db":
				cfg.Redis.DB = atoi(val, 0)
			}
		case "server":
			if key == "port" {
				cfg.Server.Port = atoi(val, 3000)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Config{}, err
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return Config{}, fmt.Errorf("database config incomplete")
	}
	if cfg.Rabbit.Host == "" || cfg.Rabbit.User == "" {
		return Config{}, fmt.Errorf("rabbitmq config incomplete")
	}
	if cfg.Redis.Host == "" {
		return Config{}, fmt.Errorf("redis config incomplete")
	}
	return cfg, nil
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
