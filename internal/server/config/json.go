package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/smartdrive/internal/flagx"
	"github.com/dmitrijs2005/smartdrive/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so they can be written as "12h" or as integer nanoseconds.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	ShareLinkValidityDuration   *timex.Duration `json:"share_link_validity_duration"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	S3PublicURLBase             *string         `json:"s3_public_url_base"`
	UsersTable                  *string         `json:"users_table"`
	FilesTable                  *string         `json:"files_table"`
	MaxUploadSize               *int64          `json:"max_upload_size"`
	StorageBackend              *string         `json:"storage_backend"`
	MetadataBackend             *string         `json:"metadata_backend"`
}

// parseJson overlays config with the JSON file named by -c/-config.
// Nothing happens when no file is given. Read or decode errors panic.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ShareLinkValidityDuration != nil {
		config.ShareLinkValidityDuration = c.ShareLinkValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicURLBase, c.S3PublicURLBase)
	setString(&config.UsersTable, c.UsersTable)
	setString(&config.FilesTable, c.FilesTable)
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.MetadataBackend, c.MetadataBackend)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
