// Command guardops is the interactive field console for the guard-ops
// backend: shift tracking, checkpoint patrol, incident reporting,
// emergency SOS and operations summaries over one authenticated session.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/millio-space/guardops/internal/apperrors"
	"github.com/millio-space/guardops/internal/bootstrap"
	"github.com/millio-space/guardops/internal/domain/model"
	"github.com/millio-space/guardops/internal/notify"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg, logger)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting guardops console",
		"backend", cfg.Gateway.BaseURL,
		"login_encoding", string(cfg.Gateway.LoginEncoding))

	app.Sessions.Bootstrap(ctx)
	printSession(app)

	console := &console{app: app, in: bufio.NewScanner(os.Stdin)}
	return console.loop(ctx)
}

type console struct {
	app *bootstrap.App
	in  *bufio.Scanner
}

func (c *console) loop(ctx context.Context) error {
	fmt.Println(`type "help" for commands`)
	for {
		fmt.Print("> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		c.dispatch(ctx, fields[0], fields[1:])
	}
}

func (c *console) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		printHelp()
	case "login":
		err = c.login(ctx, args)
	case "logout":
		c.app.Sessions.Logout()
		c.toast(ctx, notify.KindInfo, "signed out")
	case "whoami":
		printSession(c.app)
	case "shift":
		err = c.shift(ctx, args)
	case "checkpoints":
		err = c.checkpoints(ctx, args)
	case "visit":
		err = c.visit(ctx, args)
	case "incidents":
		err = c.incidents(ctx, args)
	case "report":
		err = c.report(ctx, args)
	case "sos":
		err = c.sos(ctx, args)
	case "locate":
		err = c.locate(ctx)
	case "alerts":
		err = c.alerts(ctx)
	case "ack":
		err = c.ack(ctx, args)
	case "sites":
		err = c.sites(ctx)
	case "messages":
		err = c.messages(ctx)
	case "send":
		err = c.send(ctx, args)
	case "read":
		err = c.read(ctx, args)
	case "analytics":
		err = c.analytics(ctx)
	case "status":
		err = c.status(ctx)
	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
	if err != nil {
		c.toast(ctx, notify.KindError, apperrors.UserMessage(err))
	}
}

func (c *console) toast(ctx context.Context, kind notify.Kind, text string) {
	c.app.Notifier.Notify(ctx, notify.Notification{Kind: kind, Text: text})
}

func (c *console) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}
	if err := c.app.Sessions.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "signed in")
	printSession(c.app)
	return nil
}

func (c *console) shift(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shift current|start <site-id>|end")
	}
	switch args[0] {
	case "current":
		shift, err := c.app.Gateway.CurrentShift(ctx)
		if err != nil {
			return err
		}
		if shift == nil {
			fmt.Println("no active shift")
			return nil
		}
		printShift(*shift)
		return nil
	case "start":
		if len(args) != 2 {
			return fmt.Errorf("usage: shift start <site-id>")
		}
		shift, err := c.app.Gateway.StartShift(ctx, args[1])
		if err != nil {
			return err
		}
		c.toast(ctx, notify.KindSuccess, "shift started")
		printShift(shift)
		return nil
	case "end":
		current, err := c.app.Gateway.CurrentShift(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("no active shift to end")
		}
		shift, err := c.app.Gateway.EndShift(ctx, current.ID)
		if err != nil {
			return err
		}
		c.toast(ctx, notify.KindSuccess, "shift ended")
		printShift(shift)
		return nil
	default:
		return fmt.Errorf("usage: shift current|start <site-id>|end")
	}
}

func (c *console) checkpoints(ctx context.Context, args []string) error {
	siteID := ""
	if len(args) > 0 {
		siteID = args[0]
	}
	checkpoints, err := c.app.Gateway.Checkpoints(ctx, siteID)
	if err != nil {
		return err
	}
	for _, cp := range checkpoints {
		fmt.Printf("%s  %s (%.5f, %.5f)\n", cp.ID, cp.Name, cp.Latitude, cp.Longitude)
	}
	return nil
}

func (c *console) visit(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: visit <checkpoint-id> [notes...]")
	}
	entry, err := c.app.Gateway.LogCheckpointVisit(ctx, model.CheckpointVisit{
		CheckpointID: args[0],
		Notes:        strings.Join(args[1:], " "),
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "checkpoint visit logged")
	fmt.Printf("log %s at %s\n", entry.ID, entry.Timestamp.Format(time.RFC3339))
	return nil
}

func (c *console) incidents(ctx context.Context, args []string) error {
	filter := model.IncidentFilter{}
	if len(args) > 0 {
		filter.SiteID = args[0]
	}
	incidents, err := c.app.Gateway.Incidents(ctx, filter)
	if err != nil {
		return err
	}
	for _, inc := range incidents {
		fmt.Printf("%s  [%s/%s] %s\n", inc.ID, inc.Severity, inc.Status, inc.Title)
	}
	return nil
}

func (c *console) report(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: report <site-id> <severity> <title...>")
	}
	incident, err := c.app.Gateway.CreateIncident(ctx, model.IncidentDraft{
		SiteID:   args[0],
		Severity: model.IncidentSeverity(args[1]),
		Title:    strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "incident reported")
	fmt.Printf("incident %s created\n", incident.ID)
	return nil
}

func (c *console) sos(ctx context.Context, args []string) error {
	fix, err := c.app.Geo.CurrentFix(ctx)
	if err != nil {
		return fmt.Errorf("acquire location: %w", err)
	}
	message := "Emergency SOS Alert"
	if len(args) > 0 {
		message = strings.Join(args, " ")
	}
	alert, err := c.app.Gateway.TriggerSOS(ctx, fix.Latitude, fix.Longitude, message)
	if err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "SOS alert raised")
	fmt.Printf("alert %s active at (%.5f, %.5f)\n", alert.ID, alert.Latitude, alert.Longitude)
	return nil
}

func (c *console) locate(ctx context.Context) error {
	fix, err := c.app.Geo.CurrentFix(ctx)
	if err != nil {
		return fmt.Errorf("acquire location: %w", err)
	}
	if err := c.app.Gateway.ReportLocation(ctx, model.LocationFix{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
		Timestamp: fix.Timestamp,
	}); err != nil {
		return err
	}
	fmt.Printf("position (%.5f, %.5f) reported\n", fix.Latitude, fix.Longitude)
	return nil
}

func (c *console) alerts(ctx context.Context) error {
	alerts, err := c.app.Gateway.ActiveAlerts(ctx)
	if err != nil {
		return err
	}
	for _, a := range alerts {
		fmt.Printf("%s  guard %s at (%.5f, %.5f): %s\n", a.ID, a.GuardID, a.Latitude, a.Longitude, a.Message)
	}
	return nil
}

func (c *console) ack(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ack <alert-id>")
	}
	alert, err := c.app.Gateway.AcknowledgeAlert(ctx, args[0])
	if err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "alert acknowledged")
	fmt.Printf("alert %s is %s\n", alert.ID, alert.Status)
	return nil
}

func (c *console) sites(ctx context.Context) error {
	sites, err := c.app.Gateway.Sites(ctx)
	if err != nil {
		return err
	}
	for _, s := range sites {
		fmt.Printf("%s  %s  %s\n", s.ID, s.Name, s.Address)
	}
	return nil
}

func (c *console) messages(ctx context.Context) error {
	messages, err := c.app.Gateway.Messages(ctx)
	if err != nil {
		return err
	}
	for _, m := range messages {
		marker := " "
		if !m.IsRead {
			marker = "*"
		}
		fmt.Printf("%s %s  from %s: %s\n", marker, m.ID, m.SenderID, m.Body)
	}
	return nil
}

func (c *console) send(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: send <recipient-id> <body...>")
	}
	message, err := c.app.Gateway.SendMessage(ctx, model.MessageDraft{
		RecipientID: args[0],
		Body:        strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}
	c.toast(ctx, notify.KindSuccess, "message sent")
	fmt.Printf("message %s delivered\n", message.ID)
	return nil
}

func (c *console) read(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: read <message-id>")
	}
	message, err := c.app.Gateway.MarkMessageRead(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("message %s marked read\n", message.ID)
	return nil
}

func (c *console) analytics(ctx context.Context) error {
	summary, err := c.app.Gateway.AnalyticsSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("shifts active: %d  incidents open: %d  alerts active: %d  guards on duty: %d\n",
		summary.ActiveShifts, summary.OpenIncidents, summary.ActiveAlerts, summary.GuardsOnDuty)
	return nil
}

// status fans out the three independent reads concurrently; the calls
// carry no ordering guarantee.
func (c *console) status(ctx context.Context) error {
	var (
		shift  *model.Shift
		alerts []model.SOSAlert
		unread []model.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		shift, err = c.app.Gateway.CurrentShift(gctx)
		return err
	})
	g.Go(func() (err error) {
		alerts, err = c.app.Gateway.ActiveAlerts(gctx)
		return err
	})
	g.Go(func() (err error) {
		unread, err = c.app.Gateway.UnreadMessages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if shift == nil {
		fmt.Println("shift: none")
	} else {
		fmt.Printf("shift: %s at site %s since %s\n", shift.ID, shift.SiteID, shift.StartedAt.Format(time.RFC3339))
	}
	fmt.Printf("active alerts: %d  unread messages: %d\n", len(alerts), len(unread))
	return nil
}

func printShift(shift model.Shift) {
	end := "open"
	if shift.EndedAt != nil {
		end = shift.EndedAt.Format(time.RFC3339)
	}
	fmt.Printf("shift %s  site %s  %s -> %s\n",
		shift.ID, shift.SiteID, shift.StartedAt.Format(time.RFC3339), end)
}

func printSession(app *bootstrap.App) {
	sess := app.Sessions.Current()
	if !sess.LoggedIn() {
		fmt.Println("not signed in")
		if sess.Error != "" {
			fmt.Println("last error:", sess.Error)
		}
		return
	}
	identity := sess.Identity
	site := identity.SiteID
	if site == "" {
		site = "unassigned"
	}
	fmt.Printf("signed in as %s (%s), site %s\n", identity.Username, identity.Role, site)
}

func printHelp() {
	fmt.Print(`commands:
  login <username> <password>      sign in
  logout                           sign out
  whoami                           show session
  shift current|start <site>|end   shift lifecycle
  checkpoints [site-id]            list patrol checkpoints
  visit <checkpoint-id> [notes]    log a checkpoint visit
  incidents [site-id]              list incidents
  report <site> <severity> <title> report an incident
  sos [message]                    raise an emergency alert
  locate                           report current position
  alerts                           list active SOS alerts
  ack <alert-id>                   acknowledge an SOS alert
  sites                            list guarded sites
  messages                         list inbox
  send <recipient-id> <body>       send a message
  read <message-id>                mark a message read
  analytics                        operations summary
  status                           shift + alerts + unread at a glance
  quit
`)
}
