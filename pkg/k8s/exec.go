package k8s

import (
	"bytes"
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/remotecommand"

	"github.com/andri/podgrid/internal/logger"
)

// ExecInPod executes a command in a pod and returns the combined stdout.
// An empty containerName targets the first container.
func (c *Client) ExecInPod(ctx context.Context, namespace, podName, containerName string, command []string) (string, error) {
	if len(command) == 0 {
		return "", fmt.Errorf("no command specified for pod %s/%s", namespace, podName)
	}

	pod, err := c.Clientset.CoreV1().Pods(namespace).Get(ctx, podName, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get pod %s/%s: %w", namespace, podName, err)
	}

	if containerName == "" {
		if len(pod.Spec.Containers) == 0 {
			return "", fmt.Errorf("pod %s/%s has no containers", namespace, podName)
		}
		containerName = pod.Spec.Containers[0].Name
	}

	req := c.Clientset.CoreV1().RESTClient().
		Post().
		Resource("pods").
		Name(podName).
		Namespace(namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: containerName,
			Command:   command,
			Stdin:     false,
			Stdout:    true,
			Stderr:    true,
			TTY:       false,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(c.config, "POST", req.URL())
	if err != nil {
		return "", fmt.Errorf("failed to create executor: %w", err)
	}

	var stdout, stderr bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("command failed: %w, stderr: %s", err, stderr.String())
		}
		return "", fmt.Errorf("failed to execute command: %w", err)
	}

	logger.Debug("executed command in pod",
		"namespace", namespace,
		"pod", podName,
		"container", containerName,
		"command", command[0])

	return stdout.String(), nil
}
