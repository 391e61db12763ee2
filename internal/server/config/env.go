package config

import (
	"os"
	"strconv"
	"time"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays config with environment variables. The names follow the
// existing deployment environment (hence the DDB_ prefix on table names).
//
//	PORT                   HTTP port, bound on all interfaces
//	DATABASE_DSN           PostgreSQL DSN
//	JWT_SECRET_KEY         token signing secret
//	AWS_REGION             S3 region
//	S3_BUCKET_NAME         S3 bucket
//	S3_BASE_ENDPOINT       custom S3 endpoint (MinIO)
//	S3_PUBLIC_URL_BASE     public URL prefix
//	AWS_ACCESS_KEY_ID      static S3 access key
//	AWS_SECRET_ACCESS_KEY  static S3 secret
//	DDB_USERS_TABLE        users table name
//	DDB_FILES_TABLE        files table name
//	SHARE_LINK_TTL_SECONDS presigned link lifetime
//	STORAGE_BACKEND        s3 | memory
//	METADATA_BACKEND       postgres | memory
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"DATABASE_DSN", &config.DatabaseDSN},
		{"JWT_SECRET_KEY", &config.SecretKey},
		{"AWS_REGION", &config.S3Region},
		{"S3_BUCKET_NAME", &config.S3Bucket},
		{"S3_BASE_ENDPOINT", &config.S3BaseEndpoint},
		{"S3_PUBLIC_URL_BASE", &config.S3PublicURLBase},
		{"AWS_ACCESS_KEY_ID", &config.S3RootUser},
		{"AWS_SECRET_ACCESS_KEY", &config.S3RootPassword},
		{"DDB_USERS_TABLE", &config.UsersTable},
		{"DDB_FILES_TABLE", &config.FilesTable},
		{"STORAGE_BACKEND", &config.StorageBackend},
		{"METADATA_BACKEND", &config.MetadataBackend},
	}
	for _, s := range strs {
		if v, ok := lookup(s.name); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup("SHARE_LINK_TTL_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.ShareLinkValidityDuration = time.Duration(n) * time.Second
		}
	}
}
