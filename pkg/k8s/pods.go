package k8s

import (
	"context"
	"fmt"
	"slices"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/andri/podgrid/internal/logger"
)

// ClusterDomain is the cluster-internal DNS suffix used for pod FQDNs.
const ClusterDomain = "cluster.local"

// PodRecord is the wire-level projection of a pod used by the grid.
// Rebuilt wholesale on every list; never mutated in place.
type PodRecord struct {
	// ID is the stable row identity: namespace + "/" + name.
	ID string `json:"id" yaml:"id"`

	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`

	// Phase is the pod phase (Pending/Running/Succeeded/Failed/Unknown).
	Phase string `json:"phase" yaml:"phase"`

	// Healthy is true when all containers are ready and the pod is Running.
	Healthy bool `json:"healthy" yaml:"healthy"`

	// Ready is the "ready/total" container summary, e.g. "2/2".
	Ready string `json:"ready" yaml:"ready"`

	// RestartCount is the sum of restarts across all containers.
	RestartCount int32 `json:"restart_count" yaml:"restart_count"`

	// Image is the first container image.
	Image string `json:"image" yaml:"image"`

	NodeName string `json:"node_name" yaml:"node_name"`
	PodIP    string `json:"pod_ip" yaml:"pod_ip"`
	HostIP   string `json:"host_ip" yaml:"host_ip"`

	// AppName comes from the "name" label, falling back to "app".
	AppName string `json:"app_name,omitempty" yaml:"app_name,omitempty"`

	// CreatedTimestamp is the creation time in RFC3339 form.
	CreatedTimestamp string `json:"created_timestamp" yaml:"created_timestamp"`
}

// FQDN returns the pod's cluster-internal DNS name,
// e.g. "web-7f9.prod.pod.cluster.local".
func (r PodRecord) FQDN() string {
	return fmt.Sprintf("%s.%s.pod.%s", r.Name, r.Namespace, ClusterDomain)
}

// PodID builds the stable row identity for a pod.
func PodID(namespace, name string) string {
	return namespace + "/" + name
}

// ListPodsOptions narrows a pod list request.
type ListPodsOptions struct {
	// Namespaces restricts the listing to specific namespaces.
	// Empty means all namespaces.
	Namespaces []string

	// Phases filters pods by phase. A single phase is pushed down to the
	// API server as a field selector; multiple phases are filtered here
	// since field selectors cannot express OR.
	Phases []string

	// FetchCap bounds the total number of pods pulled from the API server.
	// Zero means no cap.
	FetchCap int
}

// ListPods lists pods matching the options and projects them into PodRecords.
// The second result reports whether the fetch cap was reached, meaning more
// pods exist than were returned.
func (c *Client) ListPods(ctx context.Context, opts ListPodsOptions) ([]PodRecord, bool, error) {
	listOpts := metav1.ListOptions{}
	if len(opts.Phases) == 1 {
		listOpts.FieldSelector = "status.phase=" + opts.Phases[0]
	}
	if opts.FetchCap > 0 {
		listOpts.Limit = int64(opts.FetchCap)
	}

	var pods []corev1.Pod
	capped := false

	if len(opts.Namespaces) > 0 {
		for _, namespace := range opts.Namespaces {
			podList, err := c.Clientset.CoreV1().Pods(namespace).List(ctx, listOpts)
			if err != nil {
				// A bad namespace should not sink the whole listing.
				logger.Warn("failed to list pods in namespace", "namespace", namespace, "error", err)
				continue
			}
			pods = append(pods, podList.Items...)
			if opts.FetchCap > 0 && len(pods) >= opts.FetchCap {
				capped = true
				pods = pods[:opts.FetchCap]
				break
			}
		}
	} else {
		podList, err := c.Clientset.CoreV1().Pods(metav1.NamespaceAll).List(ctx, listOpts)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list pods: %w", err)
		}
		pods = podList.Items
		if opts.FetchCap > 0 && len(pods) >= opts.FetchCap {
			capped = true
			pods = pods[:opts.FetchCap]
		}
	}

	records := make([]PodRecord, 0, len(pods))
	for i := range pods {
		pod := &pods[i]
		if len(opts.Phases) > 1 && !slices.Contains(opts.Phases, string(pod.Status.Phase)) {
			continue
		}
		records = append(records, projectPod(pod))
	}

	return records, capped, nil
}

// projectPod maps a corev1.Pod into the grid's PodRecord projection.
func projectPod(pod *corev1.Pod) PodRecord {
	ready, total, restarts := podContainerStats(pod)

	image := ""
	if len(pod.Spec.Containers) > 0 {
		image = pod.Spec.Containers[0].Image
	}

	appName := pod.Labels["name"]
	if appName == "" {
		appName = pod.Labels["app"]
	}

	created := ""
	if !pod.CreationTimestamp.IsZero() {
		created = pod.CreationTimestamp.Format(time.RFC3339)
	}

	phase := string(pod.Status.Phase)

	return PodRecord{
		ID:               PodID(pod.Namespace, pod.Name),
		Name:             pod.Name,
		Namespace:        pod.Namespace,
		Phase:            phase,
		Healthy:          ready == total && phase == string(corev1.PodRunning),
		Ready:            fmt.Sprintf("%d/%d", ready, total),
		RestartCount:     restarts,
		Image:            image,
		NodeName:         pod.Spec.NodeName,
		PodIP:            pod.Status.PodIP,
		HostIP:           pod.Status.HostIP,
		AppName:          appName,
		CreatedTimestamp: created,
	}
}

// podContainerStats returns ready containers, total containers, and total restarts.
func podContainerStats(pod *corev1.Pod) (ready int, total int, restarts int32) {
	total = len(pod.Spec.Containers)
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
		restarts += cs.RestartCount
	}
	return ready, total, restarts
}

// GetPod returns a pod by namespace and name
func (c *Client) GetPod(ctx context.Context, namespace, name string) (*corev1.Pod, error) {
	pod, err := c.Clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get pod %s/%s: %w", namespace, name, err)
	}
	return pod, nil
}

// DeletePod deletes a pod after checking it is in a deletable phase.
// Pods in Running or Succeeded phase are refused: the grid's delete action is
// meant for clearing stuck or failed pods, not for killing healthy workloads.
func (c *Client) DeletePod(ctx context.Context, namespace, name string) error {
	pod, err := c.GetPod(ctx, namespace, name)
	if err != nil {
		return err
	}

	phase := pod.Status.Phase
	if phase == corev1.PodRunning || phase == corev1.PodSucceeded {
		return &PhaseGuardError{Namespace: namespace, Name: name, Phase: string(phase)}
	}

	if err := c.Clientset.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Errorf("failed to delete pod %s/%s: %w", namespace, name, err)
	}

	logger.Info("deleted pod", "namespace", namespace, "pod", name, "phase", string(phase))
	return nil
}

// PhaseGuardError reports a delete refused because of the pod's phase.
type PhaseGuardError struct {
	Namespace string
	Name      string
	Phase     string
}

func (e *PhaseGuardError) Error() string {
	return fmt.Sprintf(
		"cannot delete pod %s/%s: pod is in %q phase, only pods that are not Running or Succeeded can be deleted",
		e.Namespace, e.Name, e.Phase)
}
