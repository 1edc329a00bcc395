package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type stubCourseRepo struct {
	course.Repository
	names []string
}

func (r stubCourseRepo) Search(_ context.Context, _ string, _ course.Filters, _ int) ([]course.Course, error) {
	courses := make([]course.Course, 0, len(r.names))
	for _, name := range r.names {
		courses = append(courses, course.Course{ID: uuid.New(), Name: name})
	}
	return courses, nil
}

type stubUserRepo struct {
	user.Repository
}

func (stubUserRepo) SearchByUsername(_ context.Context, _ string, _ int) ([]user.Result, error) {
	return nil, nil
}

type stubListRepo struct {
	list.Repository
}

func (stubListRepo) SearchPublic(_ context.Context, _ string, _ int) ([]list.Result, error) {
	return nil, nil
}

func dialLiveSearch(t *testing.T, names []string) (*websocket.Conn, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	uc := searchUC.NewUnifiedSearchUseCase(stubCourseRepo{names: names}, stubUserRepo{}, stubListRepo{}, 5, log)
	handler := NewLiveSearchHandler(uc, 5*time.Millisecond, log)

	router := gin.New()
	router.GET("/live", handler.Stream)
	srv := httptest.NewServer(router)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

// readUntilState drains snapshots until one matches the wanted state.
// Intermediate snapshots may be dropped by the latest-wins buffer, so only
// the target state is asserted on.
func readUntilState(t *testing.T, conn *websocket.Conn, state string) LiveSearchSnapshotDTO {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var snap LiveSearchSnapshotDTO
		require.NoError(t, conn.ReadJSON(&snap))
		if snap.State == state {
			return snap
		}
		require.False(t, time.Now().After(deadline), "no %q snapshot arrived", state)
	}
}

func TestLiveSearch_TermProducesSettledSnapshot(t *testing.T) {
	conn, teardown := dialLiveSearch(t, []string{"Fancourt Links", "Leopard Creek"})
	defer teardown()

	err := conn.WriteJSON(liveSearchMessage{Type: liveMsgTypeUpdate, Term: "fan"})
	require.NoError(t, err)

	snap := readUntilState(t, conn, "settled")
	require.Len(t, snap.Results.Courses, 2)
	assert.Equal(t, "Fancourt Links", snap.Results.Courses[0].Name)
	assert.Empty(t, snap.Error)
}

func TestLiveSearch_ShortTermGoesIdle(t *testing.T) {
	conn, teardown := dialLiveSearch(t, []string{"Fancourt Links"})
	defer teardown()

	err := conn.WriteJSON(liveSearchMessage{Type: liveMsgTypeUpdate, Term: "f"})
	require.NoError(t, err)

	snap := readUntilState(t, conn, "idle")
	assert.Empty(t, snap.Results.Courses)
	assert.Empty(t, snap.Results.All)
}

func TestLiveSearch_ClearResetsResults(t *testing.T) {
	conn, teardown := dialLiveSearch(t, []string{"Fancourt Links"})
	defer teardown()

	require.NoError(t, conn.WriteJSON(liveSearchMessage{Type: liveMsgTypeUpdate, Term: "fan"}))
	readUntilState(t, conn, "settled")

	require.NoError(t, conn.WriteJSON(liveSearchMessage{Type: liveMsgTypeClear}))
	snap := readUntilState(t, conn, "idle")
	assert.Empty(t, snap.Results.Courses)
}
