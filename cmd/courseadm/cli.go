package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"course-admin/internal/adminapi"
	"course-admin/internal/concurrency"
	"course-admin/internal/config"
	"course-admin/internal/devutil"
	"course-admin/internal/domain"
	"course-admin/internal/export"
	"course-admin/internal/session"
	"course-admin/internal/sftpclient"
	coursesync "course-admin/internal/sync"
)

// newApp wires the CLI. Single-operator commands (list/add/edit/delete) run
// through the directory session; batch commands (import) talk to the gateway
// directly.
func newApp(gw *adminapi.Client, cfg config.Config) *cli.App {
	sess := session.New(gw)

	return &cli.App{
		Name:    "courseadm",
		Usage:   "Course catalog admin console",
		Version: Version,
		Commands: []*cli.Command{
			listCmd(sess),
			addCmd(sess),
			editCmd(sess),
			deleteCmd(sess),
			exportCmd(sess),
			publishCmd(sess, cfg),
			importCmd(gw),
		},
	}
}

func listCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all courses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pick", Usage: "Comma-separated wire fields to print as JSON lines (e.g. course_id,course_name)"},
		},
		Action: func(c *cli.Context) error {
			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}
			courses := sess.Courses()

			if pick := c.String("pick"); pick != "" {
				keys := splitCSVFlag(pick)
				for _, course := range courses {
					b, err := json.Marshal(devutil.Pick(wireView(course), keys...))
					if err != nil {
						return err
					}
					fmt.Println(string(b))
				}
				return nil
			}

			printTable(os.Stdout, courses)
			return nil
		},
	}
}

func addCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a new course",
		Flags: fieldFlags(),
		Action: func(c *cli.Context) error {
			f, err := fieldsFromFlags(c, domain.Fields{})
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}

			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}
			if err := sess.AddNew(); err != nil {
				return err
			}
			if err := sess.SetDraftFields(f); err != nil {
				return err
			}
			if err := sess.Submit(c.Context); err != nil {
				return fail(sess, err)
			}

			fmt.Printf("created %q (%d courses)\n", f.Name, len(sess.Courses()))
			return nil
		},
	}
}

func editCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit an existing course (unset flags keep current values)",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "id", Required: true, Usage: "Course id"},
		}, fieldFlags()...),
		Action: func(c *cli.Context) error {
			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}
			if err := sess.Edit(c.String("id")); err != nil {
				return err
			}

			f, err := fieldsFromFlags(c, sess.Draft().Fields)
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}
			if err := sess.SetDraftFields(f); err != nil {
				return err
			}
			if err := sess.Submit(c.Context); err != nil {
				return fail(sess, err)
			}

			fmt.Printf("updated %s\n", c.String("id"))
			return nil
		},
	}
}

func deleteCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a course by id",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true, Usage: "Course id"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}

			id := c.String("id")
			name := id
			for _, course := range sess.Courses() {
				if course.ID == id {
					name = course.Name
				}
			}

			if !c.Bool("yes") {
				ok, err := confirm(os.Stdin, os.Stdout, fmt.Sprintf("Are you sure you want to delete %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("aborted")
					return nil
				}
			}

			if err := sess.Delete(c.Context, id); err != nil {
				return fail(sess, err)
			}

			fmt.Printf("deleted %s (%d courses remain)\n", id, len(sess.Courses()))
			return nil
		},
	}
}

func exportCmd(sess *session.Session) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "courses.csv", Usage: "Output path"},
			&cli.StringFlag{Name: "format", Value: "csv", Usage: "Output format: csv|snapshot"},
		},
		Action: func(c *cli.Context) error {
			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}
			courses := sess.Courses()

			out := c.String("out")
			switch c.String("format") {
			case "csv":
				if err := export.WriteCatalogCSVFile(out, courses); err != nil {
					return err
				}
			case "snapshot":
				if err := export.WriteSnapshotFile(out, time.Now(), courses); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want csv or snapshot)", c.String("format"))
			}

			log.Printf("wrote %d courses to %s", len(courses), out)
			return nil
		},
	}
}

func publishCmd(sess *session.Session, cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Build the public page's course feed and optionally upload it",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 6, Usage: "Max feed entries (0 = all)"},
			&cli.StringFlag{Name: "out", Usage: "Also write the feed to this local path"},
			&cli.BoolFlag{Name: "sftp", Usage: "Upload the feed to the static host via SFTP"},
		},
		Action: func(c *cli.Context) error {
			if err := sess.Load(c.Context); err != nil {
				return fail(sess, err)
			}

			items := export.BuildFeed(sess.Courses(), c.Int("limit"))

			var buf bytes.Buffer
			if err := export.WriteFeed(&buf, items); err != nil {
				return err
			}

			if out := c.String("out"); out != "" {
				if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
					return err
				}
				log.Printf("wrote feed with %d entries to %s", len(items), out)
			}

			if c.Bool("sftp") {
				upCfg := sftpclient.Config{
					Host:                  cfg.SFTPHost,
					Port:                  cfg.SFTPPort,
					User:                  cfg.SFTPUser,
					Pass:                  cfg.SFTPPass,
					RemoteDir:             cfg.SFTPDir,
					InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
				}

				upCtx, cancel := context.WithTimeout(c.Context, 5*time.Minute)
				defer cancel()

				if err := sftpclient.UploadBytes(upCtx, upCfg, buf.Bytes(), "courses-feed.json"); err != nil {
					return err
				}
				log.Printf("uploaded feed to sftp://%s:%d%s/courses-feed.json", upCfg.Host, upCfg.Port, upCfg.RemoteDir)
			}

			if c.String("out") == "" && !c.Bool("sftp") {
				// nowhere to put it, print to stdout
				fmt.Print(buf.String())
			}
			return nil
		},
	}
}

func importCmd(gw *adminapi.Client) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Bulk create/update courses from a catalog CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "Catalog CSV path"},
			&cli.BoolFlag{Name: "prune", Usage: "Delete catalog entries absent from the file"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the plan without applying it"},
			&cli.IntFlag{Name: "workers", Value: 5, Usage: "Parallel gateway calls"},
		},
		Action: func(c *cli.Context) error {
			f, err := os.Open(c.String("file"))
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := export.ReadCatalogCSV(f)
			if err != nil {
				return err
			}

			existing, err := gw.ListCourses(c.Context)
			if err != nil {
				return err
			}

			plan, err := coursesync.Diff(rows, existing)
			if err != nil {
				return err
			}

			deletes := 0
			if c.Bool("prune") {
				deletes = len(plan.Delete)
			}
			log.Printf("plan: create=%d update=%d delete=%d", len(plan.Create), len(plan.Update), deletes)

			if c.Bool("dry-run") {
				return nil
			}

			opts := concurrency.ParallelOptions{MaxWorkers: c.Int("workers")}
			var failed int

			_, errs := concurrency.ProcessParallel(c.Context, plan.Create, opts,
				func(ctx context.Context, _ int, fields domain.Fields) (struct{}, error) {
					return struct{}{}, gw.CreateCourse(ctx, fields)
				})
			failed += report("create", errs)

			_, errs = concurrency.ProcessParallel(c.Context, plan.Update, opts,
				func(ctx context.Context, _ int, u coursesync.CourseUpdate) (struct{}, error) {
					return struct{}{}, gw.UpdateCourse(ctx, u.ID, u.Fields)
				})
			failed += report("update", errs)

			if c.Bool("prune") {
				_, errs = concurrency.ProcessParallel(c.Context, plan.Delete, opts,
					func(ctx context.Context, _ int, course domain.Course) (struct{}, error) {
						return struct{}{}, gw.DeleteCourse(ctx, course.ID)
					})
				failed += report("delete", errs)
			}

			if failed > 0 {
				return fmt.Errorf("import finished with %d failed operations", failed)
			}
			log.Printf("import done: created=%d updated=%d deleted=%d", len(plan.Create), len(plan.Update), deletes)
			return nil
		},
	}
}

func report(op string, errs []error) int {
	for _, err := range errs {
		log.Printf("WARN: %s failed: %v", op, err)
	}
	return len(errs)
}

// fail surfaces the operator-facing message the console would show, then
// returns the underlying error for the exit status.
func fail(sess *session.Session, err error) error {
	if msg := sess.ErrorMessage(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return err
}

func fieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Course name"},
		&cli.StringFlag{Name: "description", Usage: "Course description"},
		&cli.StringFlag{Name: "instructor", Usage: "Instructor display name"},
		&cli.StringFlag{Name: "price", Usage: "Price (non-negative number)"},
		&cli.StringFlag{Name: "thumbnail", Usage: "Thumbnail image URL"},
		&cli.StringFlag{Name: "video", Usage: "Video URL"},
	}
}

// fieldsFromFlags overlays set flags on top of base. For add the base is
// blank; for edit it is the draft copied from the list.
func fieldsFromFlags(c *cli.Context, base domain.Fields) (domain.Fields, error) {
	if c.IsSet("name") {
		base.Name = c.String("name")
	}
	if c.IsSet("description") {
		base.Description = c.String("description")
	}
	if c.IsSet("instructor") {
		base.Instructor = c.String("instructor")
	}
	if c.IsSet("price") {
		p, err := domain.ParsePrice(c.String("price"))
		if err != nil {
			return base, fmt.Errorf("bad --price: %w", err)
		}
		base.Price = p
	}
	if c.IsSet("thumbnail") {
		base.ThumbnailURL = c.String("thumbnail")
	}
	if c.IsSet("video") {
		base.VideoURL = c.String("video")
	}
	return base, nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printTable(w io.Writer, courses []domain.Course) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINSTRUCTOR\tPRICE")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%s\n", c.ID, c.Name, c.Instructor, c.Price.String())
	}
	tw.Flush()
}

// wireCourse is the CLI's view of a course under the backend's field names,
// for --pick output.
type wireCourse struct {
	CourseID    string       `json:"course_id"`
	CourseName  string       `json:"course_name"`
	Description string       `json:"description"`
	Instructor  string       `json:"instructor"`
	Price       domain.Price `json:"price"`
	PLink       string       `json:"p_link"`
	YLink       string       `json:"y_link"`
}

func wireView(c domain.Course) wireCourse {
	return wireCourse{
		CourseID:    c.ID,
		CourseName:  c.Name,
		Description: c.Description,
		Instructor:  c.Instructor,
		Price:       c.Price,
		PLink:       c.ThumbnailURL,
		YLink:       c.VideoURL,
	}
}

func splitCSVFlag(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
