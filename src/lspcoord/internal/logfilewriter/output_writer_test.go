package logfilewriter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/fs/fsmock"
	"github.com/nucleotide/lspcoord/src/lspcoord/internal/serverinfofile/serverinfofilemock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestNewServerWriter(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		serverInfoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)
		lc := fxtest.NewLifecycle(t)
		f := New(Params{FS: fs.New(), Lifecycle: lc, ServerInfoFile: serverInfoFileMock}).(*factory)
		f.logsDir = t.TempDir()

		wantPath := filepath.Join(f.logsDir, fmt.Sprintf("gopls-%s.log", id))
		key := fmt.Sprintf(_fmtOutputKey, "gopls", id)
		serverInfoFileMock.EXPECT().UpdateField(key, wantPath).Return(nil)
		serverInfoFileMock.EXPECT().RemoveField(key).Return(nil)

		lc.RequireStart()
		writer, err := f.NewServerWriter("gopls", id)
		require.NoError(t, err)

		_, err = writer.Write([]byte("starting gopls\n\nloaded 3 packages\n"))
		assert.NoError(t, err)
		assert.NoError(t, writer.Close())
		assert.NoError(t, writer.Close())

		contents, err := os.ReadFile(wantPath)
		require.NoError(t, err)
		assert.Contains(t, string(contents), "starting gopls")
		assert.Contains(t, string(contents), "loaded 3 packages")

		lc.RequireStop()
		_, err = os.Stat(wantPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("mkdir fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsMock := fsmock.NewMockCoordFS(ctrl)
		fsMock.EXPECT().MkdirAll(gomock.Any()).Return(errors.New("sample"))
		f := New(Params{FS: fsMock, Lifecycle: fxtest.NewLifecycle(t), ServerInfoFile: serverinfofilemock.NewMockServerInfoFile(ctrl)})

		_, err := f.NewServerWriter("clangd", id)
		assert.ErrorContains(t, err, "creating logs directory")
	})

	t.Run("open fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsMock := fsmock.NewMockCoordFS(ctrl)
		fsMock.EXPECT().MkdirAll(gomock.Any()).Return(nil)
		fsMock.EXPECT().OpenAppend(gomock.Any()).Return(nil, errors.New("sample"))
		f := New(Params{FS: fsMock, Lifecycle: fxtest.NewLifecycle(t), ServerInfoFile: serverinfofilemock.NewMockServerInfoFile(ctrl)})

		_, err := f.NewServerWriter("clangd", id)
		assert.ErrorContains(t, err, "opening server log file")
	})
}

func TestCleanupIgnoresMissingFiles(t *testing.T) {
	f := &factory{fs: fs.New(), files: map[string]struct{}{filepath.Join(t.TempDir(), "gone.log"): {}}}
	assert.NoError(t, f.cleanup(context.Background()))
	assert.Empty(t, f.files)
}
