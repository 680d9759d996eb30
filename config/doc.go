/*
Package config loads the configuration of the entitymapper command-line tool.

Sources, in increasing precedence:
  - Default(): one in-memory store named "default"
  - a YAML file, or TOML when the file name ends in .toml
  - a dotenv file (".env" unless LoadOptions.EnvFile says otherwise)
  - the process environment

Environment variables address the default store:

	ENTITYMAPPER_STORE, ENTITYMAPPER_BACKEND
	AWS_DDB_TABLE, AWS_REGION, AWS_DDB_ENDPOINT, AWS_ACCESS_KEY, AWS_SECRET_KEY
	SURREAL_ENDPOINT, SURREAL_USER, SURREAL_PASSWORD, SURREAL_NAMESPACE,
	SURREAL_DATABASE, SURREAL_TABLE
	ENTITYMAPPER_LOG_LEVEL, ENTITYMAPPER_LOG_FORMAT, ENTITYMAPPER_LOG_FILE,
	ENTITYMAPPER_LOG_MAX_SIZE_MB

Example file:

	default_store: primary
	stores:
	  primary:
	    backend: dynamodb
	    dynamodb:
	      table: entities
	      region: us-east-1
	logging:
	  level: info
*/
package config
