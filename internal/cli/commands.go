package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/client"
	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/forms"
	"github.com/iamasit07/photoshare/internal/imaging"
	"github.com/iamasit07/photoshare/internal/service/expiry"
	"github.com/iamasit07/photoshare/internal/service/toggle"
	"github.com/iamasit07/photoshare/internal/view"
)

// ErrReported means the failure was already shown to the user.
var ErrReported = errors.New("command failed")

const reconnectDelay = 5 * time.Second

// Commands returns a registry holding every photoshare command.
func (a *App) Commands() *Registry {
	r := NewRegistry(a.out)
	for _, cmd := range []*Command{
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.photosCommand(),
		a.favoritesCommand(),
		a.toggleCommand("like", "Like a photo", view.TargetLike, true, "You already like this photo."),
		a.toggleCommand("unlike", "Remove your like from a photo", view.TargetLike, false, "You haven't liked this photo."),
		a.toggleCommand("fav", "Add a photo to your favorites", view.TargetFavorite, true, "This photo is already in your favorites."),
		a.toggleCommand("unfav", "Remove a photo from your favorites", view.TargetFavorite, false, "This photo is not in your favorites."),
		a.uploadCommand(),
		a.avatarCommand(),
		a.watchCommand(),
	} {
		r.Register(cmd)
	}
	return r
}

func (a *App) registerCommand() *Command {
	cmd := &Command{
		Name:        "register",
		Description: "Create an account and sign in",
		Usage:       "photoshare register -name <full name> -email <email> -password <password> [-confirm <password>]",
		Examples:    []string{`photoshare register -name "Ada Lovelace" -email ada@example.com -password 'S3cure!pass'`},
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		confirm := fs.String("confirm", "", "password again (defaults to -password)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *confirm == "" {
			*confirm = *password
		}

		form := forms.RegisterForm{
			FullName:        strings.TrimSpace(*name),
			Email:           strings.TrimSpace(*email),
			Password:        *password,
			ConfirmPassword: *confirm,
		}
		if err := forms.Validate(form); err != nil {
			return errors.New(forms.Summary(err))
		}

		res, err := a.api.Register(ctx, client.RegisterRequest{
			FullName: form.FullName,
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			return friendly(err)
		}
		if err := a.sessions.SaveToken(ctx, res.Token); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		a.notifier.ShowInfo(fmt.Sprintf("Account created. Welcome, %s!", res.User.FullName))
		return nil
	}
	return cmd
}

func (a *App) loginCommand() *Command {
	cmd := &Command{
		Name:        "login",
		Description: "Sign in and store the session",
		Usage:       "photoshare login -email <email> -password <password>",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		if err := fs.Parse(args); err != nil {
			return err
		}

		form := forms.LoginForm{Email: strings.TrimSpace(*email), Password: *password}
		if err := forms.Validate(form); err != nil {
			return errors.New(forms.Summary(err))
		}

		res, err := a.api.Login(ctx, client.LoginRequest{Email: form.Email, Password: form.Password})
		if err != nil {
			return friendly(err)
		}
		if err := a.sessions.SaveToken(ctx, res.Token); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		a.notifier.ShowInfo(fmt.Sprintf("Welcome back, %s!", res.User.FullName))
		return nil
	}
	return cmd
}

func (a *App) logoutCommand() *Command {
	cmd := &Command{
		Name:        "logout",
		Description: "Forget the stored session",
		Usage:       "photoshare logout",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		if err := a.sessions.ClearToken(ctx); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		a.notifier.ShowInfo("Logged out.")
		return nil
	}
	return cmd
}

func (a *App) whoamiCommand() *Command {
	cmd := &Command{
		Name:        "whoami",
		Description: "Show who the stored session belongs to",
		Usage:       "photoshare whoami [-remote]",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		remote := fs.Bool("remote", false, "also ask the server")
		if err := fs.Parse(args); err != nil {
			return err
		}

		identity := a.sessions.CurrentIdentity(ctx)
		if identity == nil {
			fmt.Fprintln(a.out, "Not logged in.")
			return nil
		}

		fmt.Fprintf(a.out, "%s <%s>", identity.FullName, identity.Email)
		if identity.ID != 0 {
			fmt.Fprintf(a.out, " (id %d)", identity.ID)
		}
		fmt.Fprintln(a.out)

		switch {
		case a.sessions.IsValid(ctx):
			fmt.Fprintf(a.out, "Session valid until %s\n", identity.ExpiresAt.Local().Format(time.RFC1123))
		case identity.ExpiresAt.IsZero():
			fmt.Fprintln(a.out, "Session has no expiry and is not usable. Please log in again.")
		default:
			fmt.Fprintf(a.out, "Session expired at %s. Please log in again.\n", identity.ExpiresAt.Local().Format(time.RFC1123))
		}

		if *remote {
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			user, err := a.api.Me(ctx)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(a.out, "Server confirms %s (member since %s)\n", user.Email, user.CreatedAt.Format("2006-01-02"))
		}
		return nil
	}
	return cmd
}

func (a *App) photosCommand() *Command {
	cmd := &Command{
		Name:        "photos",
		Description: "List recent photos",
		Usage:       "photoshare photos [-page N] [-limit N]",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", a.cfg.PageSize, "photos per page")
		if err := fs.Parse(args); err != nil {
			return err
		}

		photos, err := a.api.ListPhotos(ctx, *page, *limit)
		if err != nil {
			return friendly(err)
		}
		g := view.NewGallery(a.viewDeps(), a.sessions.CurrentIdentity(ctx), nil)
		g.ReplacePage(photos)
		g.Render(a.out)
		return nil
	}
	return cmd
}

func (a *App) favoritesCommand() *Command {
	cmd := &Command{
		Name:        "favorites",
		Description: "List your favorite photos",
		Usage:       "photoshare favorites [-page N] [-limit N]",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", a.cfg.PageSize, "photos per page")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := a.requireSession(ctx); err != nil {
			return err
		}

		photos, err := a.api.ListFavorites(ctx, *page, *limit)
		if err != nil {
			return friendly(err)
		}
		g := view.NewFavoritesList(a.viewDeps(), a.sessions.CurrentIdentity(ctx), nil)
		g.ReplacePage(photos)
		g.Render(a.out)
		return nil
	}
	return cmd
}

// toggleCommand presses the like or favorite control of one photo's card
// and waits for the backend to settle it.
func (a *App) toggleCommand(name, description string, target view.Target, activate bool, alreadyMessage string) *Command {
	cmd := &Command{
		Name:        name,
		Description: description,
		Usage:       "photoshare " + name + " <photo id>",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		if err := fs.Parse(args); err != nil {
			return err
		}
		id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("usage: %s", cmd.Usage)
		}
		if err := a.requireSession(ctx); err != nil {
			return err
		}

		photo, err := a.api.GetPhoto(ctx, id)
		if err != nil {
			return friendly(err)
		}
		g := view.NewGallery(a.viewDeps(), a.sessions.CurrentIdentity(ctx), nil)
		g.ReplacePage(&domain.PhotoPage{Photos: []domain.Photo{*photo}})
		card := g.Card(id)

		control := card.Like
		if target == view.TargetFavorite {
			control = card.Favorite
		}
		if control.Blocked() {
			return errors.New(control.View().Label)
		}
		if control.State().Active == activate {
			a.notifier.ShowInfo(alreadyMessage)
			fmt.Fprintln(a.out, view.RenderCard(card))
			return nil
		}

		pending, _ := card.Click(ctx, target)
		if pending == nil {
			return fmt.Errorf("could not %s photo %d", name, id)
		}
		outcome, err := pending.Wait(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, view.RenderCard(card))
		if outcome == toggle.OutcomeRolledBack {
			return ErrReported
		}
		return nil
	}
	return cmd
}

func (a *App) uploadCommand() *Command {
	cmd := &Command{
		Name:        "upload",
		Description: "Upload a photo",
		Usage:       "photoshare upload -title <title> [-description <text>] <image file>",
		Examples:    []string{`photoshare upload -title "Sunset" ~/Pictures/sunset.png`},
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		title := fs.String("title", "", "photo title")
		description := fs.String("description", "", "photo description")
		if err := fs.Parse(args); err != nil {
			return err
		}

		form := forms.UploadForm{
			Title:       strings.TrimSpace(*title),
			Description: strings.TrimSpace(*description),
			Path:        fs.Arg(0),
		}
		if err := forms.Validate(form); err != nil {
			return errors.New(forms.Summary(err))
		}
		if err := a.requireSession(ctx); err != nil {
			return err
		}

		f, err := os.Open(form.Path)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		image, err := imaging.PrepareUpload(f)
		if err != nil {
			return err
		}
		photo, err := a.api.UploadPhoto(ctx, client.UploadRequest{
			Title:       form.Title,
			Description: form.Description,
			Filename:    jpegName(form.Path),
			Image:       image,
		})
		if err != nil {
			return friendly(err)
		}
		a.notifier.ShowInfo(fmt.Sprintf("Uploaded photo #%d %q", photo.ID, photo.Title))
		return nil
	}
	return cmd
}

func (a *App) avatarCommand() *Command {
	cmd := &Command{
		Name:        "avatar",
		Description: "Set your profile picture",
		Usage:       "photoshare avatar <image file>",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		if err := fs.Parse(args); err != nil {
			return err
		}

		form := forms.AvatarForm{Path: fs.Arg(0)}
		if err := forms.Validate(form); err != nil {
			return errors.New(forms.Summary(err))
		}
		if err := a.requireSession(ctx); err != nil {
			return err
		}

		f, err := os.Open(form.Path)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()

		image, err := imaging.PrepareAvatar(f)
		if err != nil {
			return err
		}
		if _, err := a.api.UploadAvatar(ctx, jpegName(form.Path), image); err != nil {
			return friendly(err)
		}
		a.notifier.ShowInfo("Profile picture updated.")
		return nil
	}
	return cmd
}

// jpegName keeps the base name of path with a .jpg extension, since
// uploads are re-encoded as JPEG.
func jpegName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

func (a *App) watchCommand() *Command {
	cmd := &Command{
		Name:        "watch",
		Description: "Follow likes and favorites live",
		Usage:       "photoshare watch [-page N] [-check 30s]",
	}
	cmd.Run = func(ctx context.Context, args []string) error {
		fs := cmd.NewFlagSet(a.out)
		page := fs.Int("page", 1, "page to follow")
		check := fs.Duration("check", 30*time.Second, "how often to check session expiry")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *check <= 0 {
			return fmt.Errorf("-check must be a positive duration\nusage: %s", cmd.Usage)
		}
		if err := a.requireSession(ctx); err != nil {
			return err
		}

		photos, err := a.api.ListPhotos(ctx, *page, a.cfg.PageSize)
		if err != nil {
			return friendly(err)
		}
		g := view.NewGallery(a.viewDeps(), a.sessions.CurrentIdentity(ctx), nil)
		g.ReplacePage(photos)
		g.Render(a.out)

		if a.cfg.MetricsAddr != "" {
			a.serveMetrics(ctx)
		}
		go expiry.NewWorker(a.sessions, a.notifier, *check, a.logger).Start(ctx)

		sub := client.NewSubscriber(a.cfg.WSURL, a.sessions, a.logger)
		return a.follow(ctx, sub, &printingReconciler{gallery: g, app: a})
	}
	return cmd
}

// follow keeps the live channel open until ctx ends, reconnecting after
// drops while the session is still usable.
func (a *App) follow(ctx context.Context, sub *client.Subscriber, r client.Reconciler) error {
	for {
		err := sub.Run(ctx, r)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, domain.ErrNoSession) || !a.sessions.IsValid(ctx) {
			return errNotLoggedIn
		}
		a.logger.Warn("live channel dropped", zap.Error(err))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux}

	go func() {
		a.logger.Info("metrics listening", zap.String("addr", a.cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}

// printingReconciler applies live updates and prints the changed card.
type printingReconciler struct {
	gallery *view.Gallery
	app     *App
}

func (p *printingReconciler) ApplyUpdate(update domain.PhotoUpdate) {
	p.gallery.ApplyUpdate(update)
	if card := p.gallery.Card(update.PhotoID); card != nil {
		fmt.Fprintln(p.app.out, view.RenderCard(card))
	}
}
