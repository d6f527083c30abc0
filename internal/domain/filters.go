package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	Network   string
	Migration string
	Artifact  string
	ChainID   uint64
}
