// Package lockmarkd wires the LockMark core into a small interactive
// runtime: a REPL that exercises every orchestrator entry point against a
// real local store and a real (or mock) server adapter. It exists so the
// core can be exercised end-to-end without the browser-extension UI that
// is out of scope for this module.
package lockmarkd

import (
	"bufio"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lockmark/core/internal/adapter"
	"github.com/lockmark/core/internal/config"
	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/internal/store"
	"github.com/lockmark/core/internal/vault"
	"github.com/lockmark/core/models"
)

func encodeB64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func decodeB64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// App is the concrete lockmarkd runtime: config and logger already
// resolved, a local store and server adapter opened, and a Vault composed
// from both.
type App struct {
	vault   *vault.Vault
	adapter adapter.ServerAdapter
	store   store.KVStore
	logger  *logger.Logger

	userID  string
	vaultID string

	in  *bufio.Reader
	out io.Writer
}

// NewApp opens the local SQLite store, constructs the HTTP server adapter,
// and composes a [vault.Vault] from cfg. userID/vaultID identify the account
// this process operates on; vaultID is generated if empty, mirroring how a
// first-run client would mint its own vault identifier before ever talking
// to the server.
func NewApp(ctx context.Context, cfg *config.VaultConfig, userID, vaultID string, log *logger.Logger, in io.Reader, out io.Writer) (*App, error) {
	if userID == "" {
		return nil, errors.New("lockmarkd: user id is required")
	}
	if vaultID == "" {
		vaultID = uuid.NewString()
		log.Info().Str("func", "NewApp").Str("vault_id", vaultID).Msg("minted a new vault id")
	}

	st, err := store.NewSQLiteStore(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	httpCfg := adapter.HTTPClientConfig{BaseURL: cfg.Adapter.BaseURL, RequestTimeout: cfg.Adapter.RequestTimeout}
	ad, err := adapter.NewHTTPServerAdapter(httpCfg, log)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("construct server adapter: %w", err)
	}

	v := vault.New(st, ad, log, cfg.Lock.AutoLockTimeout)

	return &App{
		vault:   v,
		adapter: ad,
		store:   st,
		logger:  log,
		userID:  userID,
		vaultID: vaultID,
		in:      bufio.NewReader(in),
		out:     out,
	}, nil
}

// Run starts the idle auto-lock timer and drives the command REPL until the
// user quits, the input stream closes, or ctx is cancelled. It always closes
// the local store before returning.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.vault.StartAutoLock(ctx); err != nil {
		a.logger.Err(err).Str("func", "Run").Msg("auto-lock disabled: invalid timeout")
	}

	fmt.Fprintf(a.out, "lockmarkd ready. user=%s vault=%s. type 'help' for commands.\n", a.userID, a.vaultID)

	for {
		fmt.Fprint(a.out, "> ")
		line, err := a.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		line = strings.TrimSpace(line)
		a.dispatch(ctx, line)
		if line == "quit" || line == "exit" {
			return nil
		}
	}
}

func (a *App) dispatch(ctx context.Context, line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "help":
		a.printHelp()
		return
	case "quit", "exit":
		fmt.Fprintln(a.out, "bye")
		return
	case "state":
		err = a.cmdState()
	case "unlock":
		err = a.cmdUnlock(ctx, args)
	case "unlock-pin":
		err = a.cmdUnlockPIN(args)
	case "setup-pin":
		err = a.cmdSetupPIN(args)
	case "remove-pin":
		err = a.vault.RemovePIN()
	case "lock":
		err = a.vault.Lock()
	case "logout":
		err = a.vault.Logout()
	case "seal":
		err = a.cmdSeal(args)
	case "open":
		err = a.cmdOpen(args)
	case "push":
		err = a.cmdPush(ctx, args)
	case "fetch":
		err = a.cmdFetch(ctx)
	default:
		fmt.Fprintf(a.out, "unknown command %q; type 'help'\n", cmd)
		return
	}

	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `commands:
  unlock <password>           log in and unlock (first unlock mints a master key)
  unlock-pin <pin>            quick-unlock with a configured PIN
  setup-pin <pin>             wrap the current MAK under a new PIN
  remove-pin                  delete the configured PIN
  lock                        wipe the in-memory keystore (soft lock)
  logout                      clear all local per-user state
  seal <text>                 encrypt text under the current MAK
  open <nonce_b64> <ct_b64>   decrypt a blob sealed by this vault
  push <version> <text>       seal text and upload it as the manifest
  fetch                       download and decrypt the current manifest
  state                       print the current lock state
  quit                        exit`)
}

func (a *App) cmdState() error {
	st, err := a.vault.State()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, st)
	return nil
}

func (a *App) cmdUnlock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unlock <password>")
	}

	login, err := a.adapter.FetchLogin(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("fetch login: %w", err)
	}
	a.adapter.SetToken(login.Session.Token)

	res, err := a.vault.Unlock(ctx, []byte(args[0]), a.userID, a.vaultID, login.KDFParams, login.WrappedMK)
	if err != nil {
		return err
	}
	if res.IsFirstUnlock {
		fmt.Fprintln(a.out, "first unlock: a new master key was created and uploaded")
	}
	return nil
}

func (a *App) cmdUnlockPIN(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unlock-pin <pin>")
	}
	return a.vault.UnlockWithPIN([]byte(args[0]))
}

func (a *App) cmdSetupPIN(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: setup-pin <pin>")
	}
	return a.vault.SetupPIN([]byte(args[0]))
}

func (a *App) cmdSeal(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: seal <text>")
	}
	blob, err := a.vault.SealManifest([]byte(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "nonce=%s ciphertext=%s\n", encodeB64(blob.Nonce), encodeB64(blob.Ciphertext))
	return nil
}

func (a *App) cmdOpen(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: open <nonce_b64> <ciphertext_b64>")
	}
	nonce, err := decodeB64(args[0])
	if err != nil {
		return fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := decodeB64(args[1])
	if err != nil {
		return fmt.Errorf("decode ciphertext: %w", err)
	}

	pt, err := a.vault.OpenManifest(models.ManifestBlob{Nonce: nonce, Ciphertext: ct})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(pt))
	return nil
}

func (a *App) cmdPush(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: push <version> <text>")
	}
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parse version: %w", err)
	}

	resp, err := a.vault.PushManifest(ctx, version, []byte(strings.Join(args[1:], " ")))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "pushed version=%d etag=%s\n", resp.Version, resp.ETag)
	return nil
}

func (a *App) cmdFetch(ctx context.Context) error {
	pt, err := a.vault.FetchManifest(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(pt))
	return nil
}
