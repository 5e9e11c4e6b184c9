package config

// Credentials for one destination site, stored at the site's secret_path
type SiteSecretData struct {
	UserName            string `json:"userName"`
	ApplicationPassword string `json:"applicationPassword"`
	ConsumerKey         string `json:"consumerKey"`
	ConsumerSecret      string `json:"consumerSecret"`
}

type PostgresSecretData struct {
	ConnectionString string `json:"connectionString"`
}
