package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMetadataTable() string {
	return os.Getenv("METADATA_TABLE")
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}
