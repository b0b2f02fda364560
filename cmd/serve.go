package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exam sessions over HTTP",
	Long: `Start a JSON API for taking the exam from other front ends.

  POST   /sessions                       start a session
  GET    /sessions/{id}                  current question and log
  POST   /sessions/{id}/answers          {"answer": "..."}
  POST   /sessions/{id}/restart          start over
  GET    /sessions/{id}/report?format=   json, html or text
  DELETE /sessions/{id}                  discard
  GET    /questions                      bank prompts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(exam.NewManager(d.engine), d.loc, d.logger)
		return srv.ListenAndServe(ctx, d.cfg.Addr)
	},
}
