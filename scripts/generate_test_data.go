package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/schedulemanager/internal/config"
	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/service"
)

type demoEmployee struct {
	Name       string
	Department string
	Position   string
}

var demoEmployees = []demoEmployee{
	{Name: "张三", Department: "技术部", Position: "后端工程师"},
	{Name: "李四", Department: "销售部", Position: "销售代表"},
	{Name: "王五", Department: "客服部", Position: "客服专员"},
	{Name: "赵六", Department: "技术部", Position: "运维工程师"},
	{Name: "钱七", Department: "人事部", Position: "招聘专员"},
}

var demoShifts = []string{"早班 (08:00-16:00)", "中班 (16:00-24:00)", "晚班 (00:00-08:00)", "全天班 (08:00-20:00)"}

// 测试数据生成器：为演示账户生成一个月的排班
func main() {
	var username, password, month string
	flag.StringVar(&username, "user", "demo", "demo account username")
	flag.StringVar(&password, "password", "demo123", "demo account password")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "month to fill, YYYY-MM")
	flag.Parse()

	target, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		log.Fatal("月份格式错误:", err)
	}

	cfg := config.Load()
	if err := db.Init(cfg.AccountsDBPath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}
	defer db.Close(db.DB)

	accounts := service.NewAccountService(db.DB, cfg.DataDir)
	if _, err := accounts.Register(username, password); err != nil && !errors.Is(err, service.ErrDuplicateUsername) {
		log.Fatal("创建演示账户失败:", err)
	}

	session := service.NewSession(accounts)
	if _, err := session.Login(username, password); err != nil {
		log.Fatal("登录演示账户失败:", err)
	}
	defer session.Close()

	fmt.Println("开始生成测试数据...")
	created := 0
	err = session.Do(func(ws *service.Workspace) error {
		for _, form := range buildDemoForms(target.Year(), target.Month(), demoEmployees, demoShifts) {
			if _, err := ws.Editor.Create(form); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Fatal("生成排班失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("账户: %s (密码: %s)\n", username, password)
	fmt.Printf("排班: %s 共 %d 条\n", target.Format("2006-01"), created)
}

// buildDemoForms 每天安排两名员工，员工与班次轮换
func buildDemoForms(year int, month time.Month, employees []demoEmployee, shifts []string) []service.RecordForm {
	if len(employees) == 0 || len(shifts) == 0 {
		return nil
	}

	days := service.DaysIn(year, month)
	forms := make([]service.RecordForm, 0, days*2)
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format(service.DateFormat)
		for slot := 0; slot < 2; slot++ {
			employee := employees[(day+slot)%len(employees)]
			forms = append(forms, service.RecordForm{
				EmployeeName: employee.Name,
				Department:   employee.Department,
				Position:     employee.Position,
				WorkDate:     date,
				ShiftType:    shifts[(day+slot)%len(shifts)],
			})
		}
	}
	return forms
}
