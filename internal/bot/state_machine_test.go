package bot

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"task-telegram/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "stderr"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestStateMachine_SetAndGet(t *testing.T) {
	sm := NewStateMachine()
	defer sm.Stop()

	state, data := sm.GetState(42)
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, data)

	sm.SetState(42, StateWaitingTaskTitle, nil)

	state, data = sm.GetState(42)
	assert.Equal(t, StateWaitingTaskTitle, state)
	assert.NotNil(t, data)
}

func TestStateMachine_DataCarriesBetweenSteps(t *testing.T) {
	sm := NewStateMachine()
	defer sm.Stop()

	sm.SetState(42, StateWaitingTaskDescription, map[string]interface{}{
		"title": "Buy milk",
	})

	state, data := sm.GetState(42)
	assert.Equal(t, StateWaitingTaskDescription, state)
	assert.Equal(t, "Buy milk", data["title"])
}

func TestStateMachine_ClearState(t *testing.T) {
	sm := NewStateMachine()
	defer sm.Stop()

	sm.SetState(42, StateWaitingBroadcast, nil)
	sm.ClearState(42)

	state, _ := sm.GetState(42)
	assert.Equal(t, StateIdle, state)
}

func TestStateMachine_ExpiredStateIsIdle(t *testing.T) {
	sm := NewStateMachine()
	defer sm.Stop()

	sm.SetState(42, StateWaitingTaskTitle, nil)

	// 回拨更新时间模拟过期
	sm.mu.Lock()
	sm.states[42].UpdatedAt = time.Now().Add(-stateExpiry - time.Minute)
	sm.mu.Unlock()

	state, _ := sm.GetState(42)
	assert.Equal(t, StateIdle, state)
}

func TestStateMachine_UsersAreIsolated(t *testing.T) {
	sm := NewStateMachine()
	defer sm.Stop()

	sm.SetState(1, StateWaitingBanID, nil)
	sm.SetState(2, StateWaitingTaskTitle, nil)

	state1, _ := sm.GetState(1)
	state2, _ := sm.GetState(2)
	assert.Equal(t, StateWaitingBanID, state1)
	assert.Equal(t, StateWaitingTaskTitle, state2)
}
