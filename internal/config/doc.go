// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// LINGBAO_API_URL and LINGBAO_TOKEN override api.base_url and api.token. Every
// field has a default, so the file itself is optional:
//
//	api:
//	  base_url: https://market.example.com
//	  token_file: ${HOME}/.lingbao-token
//	  timeout: 10s
//	  max_retries: 3
//	  retry_backoff: 500ms
//	submit:
//	  server: S1
//	feed:
//	  interval: 10s
//	  sort: price
//	  timeout: 5s
//	log:
//	  level: info
//	  format: text
package config
