// @title           jobboard API
// @version         1.0
// @description     REST API доски вакансий: пользователи, компании, вакансии, подтверждение почты.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "jobboard_backend/internal/app"

func main() {
	app.Run()
}
