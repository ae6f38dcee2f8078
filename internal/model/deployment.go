package model

import "fmt"

// Deployment is the runtime substrate hosting a sample application.
type Deployment string

const (
	// DeploymentK8s marks problems deployed on Kubernetes.
	// It is the default when a catalog entry omits the deployment.
	DeploymentK8s Deployment = "k8s"

	// DeploymentDocker marks problems deployed with Docker.
	DeploymentDocker Deployment = "docker"
)

// Deployments returns the deployment kinds in report order.
func Deployments() []Deployment {
	return []Deployment{DeploymentK8s, DeploymentDocker}
}

// ParseDeployment converts s into a Deployment.
// An empty string yields DeploymentK8s.
func ParseDeployment(s string) (Deployment, error) {
	switch Deployment(s) {
	case "":
		return DeploymentK8s, nil
	case DeploymentK8s, DeploymentDocker:
		return Deployment(s), nil
	default:
		return "", fmt.Errorf("unknown deployment %q", s)
	}
}

// String returns the deployment identifier.
func (d Deployment) String() string {
	return string(d)
}

// Label returns the display name used in summaries.
func (d Deployment) Label() string {
	switch d {
	case DeploymentK8s:
		return "Kubernetes"
	case DeploymentDocker:
		return "Docker"
	default:
		return string(d)
	}
}

// Marker returns the bracketed tag printed in front of each record in the text report.
func (d Deployment) Marker() string {
	if d == DeploymentDocker {
		return "[Docker]"
	}
	return "[K8s]"
}
