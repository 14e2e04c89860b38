package factory

import (
	"fmt"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/es"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-ingest/pkg/utils"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	// Es is set when committed news should also be indexed for search.
	Es *es.ClientConfig
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if storageType != storage.PG && storageType != storage.InMem {
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.InMem})
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := os.Getenv("PG_MAX_CONNS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS value: %s", v)
			}
			pgCfg.MaxConns = int32(n)
		}
	}

	var esCfg *es.ClientConfig
	if addrs := utils.SplitCSV(os.Getenv("ES_ADDRESSES")); len(addrs) > 0 {
		esCfg = &es.ClientConfig{
			Addresses: addrs,
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if esCfg.IndexName == "" {
			esCfg.IndexName = "news"
		}
		if err := esCfg.Validate(); err != nil {
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: %w", err)
		}
	}

	return &StorageConfig{
		Type: storageType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}
