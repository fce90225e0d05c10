package http

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/ctxlog"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dashboard"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/dataset"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/present"
	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/session"
)

const loginFailedMessage = "아이디 또는 비밀번호가 올바르지 않습니다."

type loginPage struct {
	Username string
	Error    string
}

type dashboardPage struct {
	View       dashboard.View
	ChartTitle string
	ChartURL   template.URL
	ChartError string
	HasLogo    bool
	LogoError  string
}

// selection reads the region and pond selectors from the query string.
func selection(c *gin.Context) dataset.Selection {
	return dataset.NewSelection(c.Query("region"), c.Query("pond"))
}

// handleIndex renders the login form or, once logged in, the dashboard.
// GET /
func (s *Server) handleIndex(c *gin.Context) {
	sess := currentSession(c)
	if !sess.Authenticated {
		c.HTML(http.StatusOK, "login.html", loginPage{})
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	view := dashboard.Render(s.table, sess, selection(c))
	page := dashboardPage{View: view, ChartTitle: present.ChartTitle}

	var buf bytes.Buffer
	if err := present.RenderChart(&buf, view.ChartInput(), s.font); err != nil {
		ctxlog.From(ctx).Error("failed to render chart", "error", err)
		page.ChartError = "차트를 그릴 수 없습니다."
	} else {
		page.ChartURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
	}

	if _, err := os.Stat(s.cfg.LogoPath); err == nil {
		page.HasLogo = true
	} else {
		page.LogoError = fmt.Sprintf("로고 파일(%s)이 폴더에 없습니다.", filepath.Base(s.cfg.LogoPath))
	}

	if ctx.Err() != nil {
		c.String(http.StatusServiceUnavailable, "render timed out")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}

// handleLogin checks the submitted credentials against the gate. A
// successful login always gets a fresh session id.
// POST /login
func (s *Server) handleLogin(c *gin.Context) {
	prev := currentSession(c)
	user := c.PostForm("username")

	var candidate session.Session
	if err := s.gate.Login(&candidate, user, c.PostForm("password")); err != nil {
		ctxlog.From(c.Request.Context()).Warn("login rejected", "user", user)
		c.HTML(http.StatusUnauthorized, "login.html", loginPage{Username: user, Error: loginFailedMessage})
		return
	}

	sess, err := s.sessions.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	sess.Authenticated = candidate.Authenticated
	sess.User = candidate.User
	if err := s.sessions.Save(sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if prev.ID != "" {
		s.sessions.Delete(prev.ID)
	}

	ctxlog.From(c.Request.Context()).Info("login", "user", user)
	s.setSessionCookie(c, sess)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleLogout returns the browser to the logged-out state and forgets its
// session.
// POST /logout
func (s *Server) handleLogout(c *gin.Context) {
	sess := currentSession(c)
	s.gate.Logout(&sess)
	if sess.ID != "" {
		s.sessions.Delete(sess.ID)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleLogo serves the logo image, or 404 when the file is absent.
// GET /logo
func (s *Server) handleLogo(c *gin.Context) {
	if _, err := os.Stat(s.cfg.LogoPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "logo not found"})
		return
	}
	c.File(s.cfg.LogoPath)
}
