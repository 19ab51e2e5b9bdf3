//go:build unix

package tesseract

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

// wrapperBody is a fake tesseract that, like a shell shim, runs its work in a child
// instead of exec'ing it, and records the child's pid.
const wrapperBody = `sleep 7 &
echo $! > "$(dirname "$0")/child"
wait
echo partial`

// processAlive reports whether pid names a live process. Zombies awaiting a reaper
// count as dead.
func processAlive(pid int) bool {
	if err := syscall.Kill(pid, 0); errors.Is(err, syscall.ESRCH) {
		return false
	}
	stat, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return !os.IsNotExist(err)
	}
	// pid (comm) STATE ...
	fields := strings.Fields(string(stat[strings.LastIndexByte(string(stat), ')')+1:]))
	return len(fields) == 0 || fields[0] != "Z"
}

func childPID(t *testing.T, fake *fakeBinary) int {
	t.Helper()
	data, err := os.ReadFile(fake.path("child"))
	if err != nil {
		t.Fatalf("wrapper did not start its child: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	return pid
}

func requireDead(t *testing.T, pid int) {
	t.Helper()
	for deadline := time.Now().Add(3 * time.Second); time.Now().Before(deadline); {
		if !processAlive(pid) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	syscall.Kill(pid, syscall.SIGKILL)
	t.Errorf("child process %d survived the call", pid)
}

func TestTimeoutKillsProcessGroup(t *testing.T) {
	fake := newFakeBinary(t, wrapperBody)
	opts := DefaultOptions()
	opts.Timeout = 300 * time.Millisecond

	start := time.Now()
	out, err := fake.client.ImageToString(context.Background(), testImage(t), opts)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if out != "" {
		t.Errorf("partial output returned: %q", out)
	}
	if elapsed >= waitDelay {
		t.Errorf("call took %v, pipes were held by a surviving child", elapsed)
	}
	requireDead(t, childPID(t, fake))
}

func TestCancellationKillsProcessGroup(t *testing.T) {
	fake := newFakeBinary(t, wrapperBody)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(300*time.Millisecond, cancel)

	_, err := fake.client.ImageToString(ctx, testImage(t), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	requireDead(t, childPID(t, fake))
}
