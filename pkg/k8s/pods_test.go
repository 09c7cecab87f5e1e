package k8s

import (
	"context"
	"errors"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"
)

func makePod(namespace, name string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			Labels:            map[string]string{"app": name},
			CreationTimestamp: metav1.NewTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
			OwnerReferences: []metav1.OwnerReference{
				{
					APIVersion: "apps/v1",
					Kind:       "ReplicaSet",
					Name:       name + "-rs",
					Controller: ptr.To(true),
				},
			},
		},
		Spec: corev1.PodSpec{
			NodeName: "node-1",
			Containers: []corev1.Container{
				{Name: "main", Image: "nginx:1.27"},
			},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			PodIP: "10.0.0.1",
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "main", Ready: phase == corev1.PodRunning, RestartCount: 2},
			},
		},
	}
}

func TestListPods_ProjectsRecords(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(makePod("default", "web", corev1.PodRunning))
	client := NewClientFromClientset(clientset)

	records, capped, err := client.ListPods(ctx, ListPodsOptions{})
	if err != nil {
		t.Fatalf("failed to list pods: %v", err)
	}
	if capped {
		t.Error("expected uncapped listing")
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID != "default/web" {
		t.Errorf("ID = %q, want default/web", rec.ID)
	}
	if rec.Phase != "Running" {
		t.Errorf("Phase = %q, want Running", rec.Phase)
	}
	if !rec.Healthy {
		t.Error("expected running pod with ready containers to be healthy")
	}
	if rec.Ready != "1/1" {
		t.Errorf("Ready = %q, want 1/1", rec.Ready)
	}
	if rec.RestartCount != 2 {
		t.Errorf("RestartCount = %d, want 2", rec.RestartCount)
	}
	if rec.Image != "nginx:1.27" {
		t.Errorf("Image = %q, want nginx:1.27", rec.Image)
	}
	if rec.AppName != "web" {
		t.Errorf("AppName = %q, want web (app label fallback)", rec.AppName)
	}
	if rec.CreatedTimestamp != "2025-06-01T12:00:00Z" {
		t.Errorf("CreatedTimestamp = %q", rec.CreatedTimestamp)
	}
}

func TestListPods_MultiPhaseFilter(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(
		makePod("default", "running", corev1.PodRunning),
		makePod("default", "failed", corev1.PodFailed),
		makePod("default", "pending", corev1.PodPending),
	)
	client := NewClientFromClientset(clientset)

	records, _, err := client.ListPods(ctx, ListPodsOptions{
		Phases: []string{"Failed", "Pending"},
	})
	if err != nil {
		t.Fatalf("failed to list pods: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Phase == "Running" {
			t.Errorf("running pod %s should have been filtered out", rec.ID)
		}
	}
}

func TestListPods_NamespaceScoped(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(
		makePod("prod", "web", corev1.PodRunning),
		makePod("staging", "web", corev1.PodRunning),
		makePod("dev", "web", corev1.PodRunning),
	)
	client := NewClientFromClientset(clientset)

	records, _, err := client.ListPods(ctx, ListPodsOptions{
		Namespaces: []string{"prod", "staging"},
	})
	if err != nil {
		t.Fatalf("failed to list pods: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Namespace == "dev" {
			t.Errorf("dev pod %s should not be listed", rec.ID)
		}
	}
}

func TestListPods_FetchCap(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(
		makePod("a", "p1", corev1.PodRunning),
		makePod("b", "p2", corev1.PodRunning),
		makePod("c", "p3", corev1.PodRunning),
	)
	client := NewClientFromClientset(clientset)

	records, capped, err := client.ListPods(ctx, ListPodsOptions{
		Namespaces: []string{"a", "b", "c"},
		FetchCap:   2,
	})
	if err != nil {
		t.Fatalf("failed to list pods: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records after cap, got %d", len(records))
	}
	if !capped {
		t.Error("expected capped flag when cap is reached")
	}
}

func TestDeletePod_RefusesRunningAndSucceeded(t *testing.T) {
	ctx := context.Background()

	for _, phase := range []corev1.PodPhase{corev1.PodRunning, corev1.PodSucceeded} {
		t.Run(string(phase), func(t *testing.T) {
			clientset := fake.NewClientset(makePod("default", "guarded", phase))
			client := NewClientFromClientset(clientset)

			err := client.DeletePod(ctx, "default", "guarded")
			if err == nil {
				t.Fatal("expected phase guard to refuse deletion")
			}

			var guardErr *PhaseGuardError
			if !errors.As(err, &guardErr) {
				t.Fatalf("expected PhaseGuardError, got %T: %v", err, err)
			}
			if guardErr.Phase != string(phase) {
				t.Errorf("Phase = %q, want %q", guardErr.Phase, phase)
			}

			// Pod must still exist after the refused delete.
			if _, err := client.GetPod(ctx, "default", "guarded"); err != nil {
				t.Errorf("pod should survive refused delete: %v", err)
			}
		})
	}
}

func TestDeletePod_DeletesFailedPod(t *testing.T) {
	ctx := context.Background()
	clientset := fake.NewClientset(makePod("default", "crashed", corev1.PodFailed))
	client := NewClientFromClientset(clientset)

	if err := client.DeletePod(ctx, "default", "crashed"); err != nil {
		t.Fatalf("failed to delete failed pod: %v", err)
	}

	if _, err := client.GetPod(ctx, "default", "crashed"); !IsNotFound(err) {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
}

func TestDeletePod_NotFound(t *testing.T) {
	ctx := context.Background()
	client := NewClientFromClientset(fake.NewClientset())

	err := client.DeletePod(ctx, "default", "ghost")
	if err == nil {
		t.Fatal("expected error for missing pod")
	}
	if !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestPodFQDN(t *testing.T) {
	rec := PodRecord{Name: "web-7f9", Namespace: "prod"}
	want := "web-7f9.prod.pod.cluster.local"
	if got := rec.FQDN(); got != want {
		t.Errorf("FQDN() = %q, want %q", got, want)
	}
}
