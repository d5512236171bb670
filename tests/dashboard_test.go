package tests

import (
	"context"
	"io"
	"net/http"
)

func (s *IntegrationTestSuite) TestDashboard() {
	s.Run("dashboard over empty store", func() {
		ctx := context.Background()

		code, html := s.getDashboard(ctx)

		s.Require().Equal(http.StatusOK, code)
		s.Require().Contains(html, "Total Requests: 0")
		s.Require().Contains(html, "Average Response Time (ms): 0.00")
		s.Require().Contains(html, "Most Common Source Currency: N/A")
	})

	s.Run("dashboard lists every conversion", func() {
		ctx := context.Background()

		_, _ = s.convert(ctx, "USD", "EUR", "100")
		_, _ = s.convert(ctx, "USD", "RUB", "50")

		code, html := s.getDashboard(ctx)

		s.Require().Equal(http.StatusOK, code)
		s.Require().Contains(html, "Total Requests: 2")
		s.Require().Contains(html, "Most Common Source Currency: USD")
		s.Require().Contains(html, "<td>USD</td>")
		s.Require().Contains(html, "<td>RUB</td>")
		s.Require().Contains(html, "<td>100</td>")
	})
}

func (s *IntegrationTestSuite) getDashboard(ctx context.Context) (int, string) {
	s.T().Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/dashboard", nil)
	s.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	err = resp.Body.Close()
	s.Require().NoError(err)

	return resp.StatusCode, string(body)
}
